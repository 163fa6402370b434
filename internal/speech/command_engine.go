package speech

import (
	"bufio"
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

// speakers lists known synthesizer binaries in preference order.
var speakers = []string{"espeak-ng", "espeak", "say"}

// CommandEngine speaks through a synthesizer binary on the host.
// Utterances run one at a time; Cancel kills the running process.
type CommandEngine struct {
	binary string

	mu      sync.Mutex
	current *exec.Cmd
	voices  []Voice
}

// NewCommandEngine finds a synthesizer binary on PATH. It returns an
// error when none is installed.
func NewCommandEngine() (*CommandEngine, error) {
	for _, name := range speakers {
		if path, err := exec.LookPath(name); err == nil {
			e := &CommandEngine{binary: path}
			e.voices = e.loadVoices()
			return e, nil
		}
	}
	return nil, fmt.Errorf("no speech synthesizer found (tried %s)", strings.Join(speakers, ", "))
}

// Voices returns the catalog reported by the binary.
func (e *CommandEngine) Voices() []Voice {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.voices
}

// Speak voices the utterance, replacing any in-flight one.
func (e *CommandEngine) Speak(u Utterance) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current != nil && e.current.Process != nil {
		e.current.Process.Kill()
		e.current = nil
	}

	var args []string
	switch {
	case strings.Contains(e.binary, "espeak"):
		if u.Voice.ID != "" {
			args = append(args, "-v", u.Voice.ID)
		} else if u.Locale != "" {
			args = append(args, "-v", localePrefix(u.Locale))
		}
	case strings.HasSuffix(e.binary, "say"):
		if u.Voice.Name != "" {
			args = append(args, "-v", u.Voice.Name)
		}
	}
	args = append(args, u.Text)

	cmd := exec.Command(e.binary, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting synthesizer: %w", err)
	}
	e.current = cmd

	go func() {
		cmd.Wait()
		e.mu.Lock()
		if e.current == cmd {
			e.current = nil
		}
		e.mu.Unlock()
	}()

	return nil
}

// Cancel stops the current utterance, if any.
func (e *CommandEngine) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current != nil && e.current.Process != nil {
		e.current.Process.Kill()
		e.current = nil
	}
}

// Subscribe registers a catalog-change callback. The binary's catalog
// is fixed for the process lifetime, so the callback never fires; the
// returned cancel is still safe to call.
func (e *CommandEngine) Subscribe(fn func()) (cancel func()) {
	return func() {}
}

// loadVoices queries the binary for its voice list.
func (e *CommandEngine) loadVoices() []Voice {
	switch {
	case strings.Contains(e.binary, "espeak"):
		return e.parseVoices("--voices", parseEspeakVoice)
	case strings.HasSuffix(e.binary, "say"):
		return e.parseVoices("-v?", parseSayVoice)
	}
	return nil
}

func (e *CommandEngine) parseVoices(flag string, parse func(string) (Voice, bool)) []Voice {
	out, err := exec.Command(e.binary, flag).Output()
	if err != nil {
		return nil
	}

	var voices []Voice
	scanner := bufio.NewScanner(strings.NewReader(string(out)))
	for scanner.Scan() {
		if v, ok := parse(scanner.Text()); ok {
			voices = append(voices, v)
		}
	}
	return voices
}

// parseEspeakVoice reads one line of `espeak --voices` output:
//
//	Pty Language Age/Gender VoiceName          File          Other Languages
//	 5  en-gb          M  english             en            (en 2)
func parseEspeakVoice(line string) (Voice, bool) {
	fields := strings.Fields(line)
	if len(fields) < 4 || fields[0] == "Pty" {
		return Voice{}, false
	}
	return Voice{
		ID:     fields[3],
		Name:   fields[3],
		Locale: fields[1],
	}, true
}

// parseSayVoice reads one line of `say -v?` output:
//
//	Alex                en_US    # Most people recognize me by my voice.
func parseSayVoice(line string) (Voice, bool) {
	idx := strings.Index(line, "#")
	if idx > 0 {
		line = line[:idx]
	}
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Voice{}, false
	}
	locale := strings.ReplaceAll(fields[len(fields)-1], "_", "-")
	name := strings.Join(fields[:len(fields)-1], " ")
	return Voice{ID: name, Name: name, Locale: locale}, true
}

// localePrefix returns the language part of a locale tag.
func localePrefix(locale string) string {
	if i := strings.Index(locale, "-"); i > 0 {
		return locale[:i]
	}
	return locale
}
