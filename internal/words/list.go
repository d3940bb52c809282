package words

import "github.com/wordgamelab/wordgame-backend/internal"

// Builtin returns the default word list used when no CSV override is
// configured. Concrete words are tangible objects, abstract words are
// concepts; every word carries the terms the quizmaster must avoid.
func Builtin() []internal.Word {
	return []internal.Word{
		// Concrete.
		{Text: "umbrella", Category: internal.CategoryConcrete, BannedTerms: []string{"rain", "wet", "cover", "handle"}},
		{Text: "guitar", Category: internal.CategoryConcrete, BannedTerms: []string{"music", "strings", "play", "instrument"}},
		{Text: "bridge", Category: internal.CategoryConcrete, BannedTerms: []string{"river", "cross", "water", "span"}},
		{Text: "candle", Category: internal.CategoryConcrete, BannedTerms: []string{"wax", "flame", "light", "burn"}},
		{Text: "mirror", Category: internal.CategoryConcrete, BannedTerms: []string{"reflection", "glass", "look", "image"}},
		{Text: "anchor", Category: internal.CategoryConcrete, BannedTerms: []string{"ship", "sea", "heavy", "chain"}},
		{Text: "ladder", Category: internal.CategoryConcrete, BannedTerms: []string{"climb", "steps", "rungs", "high"}},
		{Text: "compass", Category: internal.CategoryConcrete, BannedTerms: []string{"north", "direction", "needle", "navigate"}},
		{Text: "telescope", Category: internal.CategoryConcrete, BannedTerms: []string{"stars", "look", "far", "lens"}},
		{Text: "scissors", Category: internal.CategoryConcrete, BannedTerms: []string{"cut", "paper", "blades", "sharp"}},
		{Text: "volcano", Category: internal.CategoryConcrete, BannedTerms: []string{"lava", "erupt", "mountain", "fire"}},
		{Text: "piano", Category: internal.CategoryConcrete, BannedTerms: []string{"keys", "music", "play", "instrument"}},

		// Abstract.
		{Text: "freedom", Category: internal.CategoryAbstract, BannedTerms: []string{"liberty", "free", "independence", "rights"}},
		{Text: "courage", Category: internal.CategoryAbstract, BannedTerms: []string{"brave", "fear", "hero", "bold"}},
		{Text: "patience", Category: internal.CategoryAbstract, BannedTerms: []string{"wait", "calm", "time", "tolerance"}},
		{Text: "jealousy", Category: internal.CategoryAbstract, BannedTerms: []string{"envy", "green", "covet", "resent"}},
		{Text: "nostalgia", Category: internal.CategoryAbstract, BannedTerms: []string{"past", "memory", "longing", "remember"}},
		{Text: "justice", Category: internal.CategoryAbstract, BannedTerms: []string{"law", "fair", "court", "judge"}},
		{Text: "curiosity", Category: internal.CategoryAbstract, BannedTerms: []string{"wonder", "question", "explore", "interest"}},
		{Text: "wisdom", Category: internal.CategoryAbstract, BannedTerms: []string{"knowledge", "wise", "experience", "smart"}},
		{Text: "ambition", Category: internal.CategoryAbstract, BannedTerms: []string{"goal", "drive", "success", "aspire"}},
		{Text: "harmony", Category: internal.CategoryAbstract, BannedTerms: []string{"balance", "peace", "agreement", "together"}},
		{Text: "doubt", Category: internal.CategoryAbstract, BannedTerms: []string{"uncertain", "question", "sure", "hesitate"}},
		{Text: "gratitude", Category: internal.CategoryAbstract, BannedTerms: []string{"thanks", "thankful", "appreciate", "grateful"}},
	}
}
