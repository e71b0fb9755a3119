package command

import (
	"bufio"
	"strings"

	"github.com/bnema/ssild/internal/domain"
)

type engine struct {
	name        string
	voiceFlag   string
	listArgs    []string
	parseVoices func(output string) []domain.Voice
}

var defaultEngines = []engine{
	{name: "espeak-ng", voiceFlag: "-v", listArgs: []string{"--voices"}, parseVoices: parseEspeakVoices},
	{name: "espeak", voiceFlag: "-v", listArgs: []string{"--voices"}, parseVoices: parseEspeakVoices},
	{name: "say", voiceFlag: "-v", listArgs: []string{"-v", "?"}, parseVoices: parseSayVoices},
	{name: "spd-say", voiceFlag: "-y", listArgs: []string{"-L"}, parseVoices: parseSpdSayVoices},
}

func (e engine) speakArgs(text string, voice string) []string {
	args := make([]string, 0, 3)
	if voice = strings.TrimSpace(voice); voice != "" {
		args = append(args, e.voiceFlag, voice)
	}
	return append(args, text)
}

// parseEspeakVoices reads the `--voices` table:
//
//	Pty Language       Age/Gender VoiceName          File                 Other Languages
//	 5  en-us           --/M      English_(America)  gmw/en-US            (en 2)
func parseEspeakVoices(output string) []domain.Voice {
	var voices []domain.Voice
	for i, line := range lines(output) {
		fields := strings.Fields(line)
		if i == 0 && len(fields) > 0 && fields[0] == "Pty" {
			continue
		}
		if len(fields) < 4 {
			continue
		}
		voices = append(voices, domain.Voice{
			ID:       fields[1],
			Name:     strings.ReplaceAll(fields[3], "_", " "),
			Language: fields[1],
		})
	}
	return voices
}

// parseSayVoices reads `say -v ?` where names may contain spaces:
//
//	Bad News            en_US    # The light you see at the end of the tunnel...
func parseSayVoices(output string) []domain.Voice {
	var voices []domain.Voice
	for _, line := range lines(output) {
		entry, _, _ := strings.Cut(line, "#")
		fields := strings.Fields(entry)
		if len(fields) < 2 {
			continue
		}
		name := strings.Join(fields[:len(fields)-1], " ")
		voices = append(voices, domain.Voice{
			ID:       name,
			Name:     name,
			Language: fields[len(fields)-1],
		})
	}
	return voices
}

// parseSpdSayVoices reads `spd-say -L`:
//
//	NAME                 LANGUAGE             VARIANT
//	afrikaans            af                   none
func parseSpdSayVoices(output string) []domain.Voice {
	var voices []domain.Voice
	for _, line := range lines(output) {
		fields := strings.Fields(line)
		if len(fields) < 2 || fields[0] == "NAME" {
			continue
		}
		voices = append(voices, domain.Voice{
			ID:       fields[0],
			Name:     fields[0],
			Language: fields[1],
		})
	}
	return voices
}

func lines(output string) []string {
	var result []string
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			result = append(result, line)
		}
	}
	return result
}
