package game

import (
	"fmt"
	"strings"

	"github.com/wordgamelab/wordgame-backend/internal"
)

// RevealHint returns the disclosure a used hint grants over the word.
func RevealHint(h internal.Hint, w *internal.Word) string {
	switch h {
	case internal.HintStartingLetter:
		return string([]rune(w.Text)[0])
	case internal.HintWordLength:
		return fmt.Sprintf("%d", len([]rune(w.Text)))
	case internal.HintBannedWord:
		if len(w.BannedTerms) == 0 {
			return ""
		}
		return w.BannedTerms[0]
	default:
		return ""
	}
}

// HintReveals maps every used hint to its revealed value, for guesser-side
// snapshots.
func HintReveals(r *internal.Round) map[internal.Hint]string {
	if len(r.UsedHints) == 0 {
		return nil
	}
	reveals := make(map[internal.Hint]string, len(r.UsedHints))
	for _, h := range r.UsedHints {
		reveals[h] = RevealHint(h, r.Word)
	}
	return reveals
}

// SolverContext formats used hints and the wrong-guess history into the
// free-text block the solve endpoint receives alongside the description.
func SolverContext(r *internal.Round) string {
	hintParts := make([]string, 0, len(r.UsedHints))
	for _, h := range r.UsedHints {
		switch h {
		case internal.HintStartingLetter:
			hintParts = append(hintParts, "The word starts with the letter: "+RevealHint(h, r.Word)+".")
		case internal.HintWordLength:
			hintParts = append(hintParts, "The word has "+RevealHint(h, r.Word)+" letters.")
		case internal.HintBannedWord:
			hintParts = append(hintParts, "One of the banned words is: "+RevealHint(h, r.Word)+".")
		}
	}

	usedWords := ""
	if len(r.History) > 0 {
		usedWords = "These are words that have been guessed but are wrong: " + strings.Join(r.History, ", ") + "."
	}
	return strings.TrimSpace(strings.Join(hintParts, " ") + " " + usedWords)
}
