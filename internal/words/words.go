package words

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/wordgamelab/wordgame-backend/internal"
)

var (
	ErrEmptyCategory = errors.New("word pool needs at least one word per category")
	ErrOddRoundCount = errors.New("round count must be even")
)

// Pool draws the word sequence for a whole game session. One pool is
// shared by every connection handler, so draws are serialized.
type Pool struct {
	concrete []internal.Word
	abstract []internal.Word

	mu  sync.Mutex
	rng *rand.Rand
}

// NewPool builds a pool from the given words. Banned-term lists are
// normalized to lower case and never contain the word itself (that ban is
// implicit). Both categories must be non-empty.
func NewPool(list []internal.Word) (*Pool, error) {
	p := &Pool{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, w := range list {
		w.Text = strings.ToLower(strings.TrimSpace(w.Text))
		if w.Text == "" {
			continue
		}
		banned := make([]string, 0, len(w.BannedTerms))
		for _, term := range w.BannedTerms {
			term = strings.ToLower(strings.TrimSpace(term))
			if term == "" || term == w.Text {
				continue
			}
			banned = append(banned, term)
		}
		w.BannedTerms = banned

		switch w.Category {
		case internal.CategoryConcrete:
			p.concrete = append(p.concrete, w)
		case internal.CategoryAbstract:
			p.abstract = append(p.abstract, w)
		}
	}
	if len(p.concrete) == 0 || len(p.abstract) == 0 {
		return nil, ErrEmptyCategory
	}
	return p, nil
}

// Seed makes the draw deterministic, for tests.
func (p *Pool) Seed(seed int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rng = rand.New(rand.NewSource(seed))
}

// DrawSession returns the fixed word sequence for one session: one abstract
// then one concrete word per pair of rounds, so category alternates with
// round parity. Draws are independent per slot; the same word may recur.
func (p *Pool) DrawSession(maxRounds int) ([]internal.Word, error) {
	if maxRounds%2 != 0 {
		return nil, ErrOddRoundCount
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	sequence := make([]internal.Word, 0, maxRounds)
	for i := 0; i < maxRounds/2; i++ {
		sequence = append(sequence, p.abstract[p.rng.Intn(len(p.abstract))])
		sequence = append(sequence, p.concrete[p.rng.Intn(len(p.concrete))])
	}
	return sequence, nil
}

// FromCSV loads a word list from a CSV file with records of the form
// word,category,term;term;term. Invalid records are skipped with a log-free
// best effort; the caller decides whether the resulting pool is usable.
func FromCSV(filePath string) ([]internal.Word, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("unable to read word file %s: %w", filePath, err)
	}
	defer f.Close()

	csvReader := csv.NewReader(f)
	csvReader.FieldsPerRecord = -1
	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("unable to parse %s as CSV: %w", filePath, err)
	}

	var list []internal.Word
	for _, record := range records {
		if len(record) < 3 {
			continue
		}
		category := internal.WordCategory(strings.TrimSpace(record[1]))
		if category != internal.CategoryConcrete && category != internal.CategoryAbstract {
			continue
		}
		list = append(list, internal.Word{
			Text:        record[0],
			Category:    category,
			BannedTerms: strings.Split(record[2], ";"),
		})
	}
	return list, nil
}
