package chatanalysis

import (
	"encoding/json"
	"sort"
)

// A FrequencyTable counts words (or emoji symbols) for one cohort.
// Counts are monotonic while folding, and the fold is commutative: each
// entry remembers the earliest original (message, token) position at
// which the word appeared, so partial tables built by parallel workers
// merge to the same result in any order.
type FrequencyTable struct {
	counts map[string]*freqEntry
}

type freqEntry struct {
	count    int
	firstMsg int // original message index of first occurrence
	firstPos int // token position within that message
}

// NewFrequencyTable returns an empty table.
func NewFrequencyTable() *FrequencyTable {
	return &FrequencyTable{counts: make(map[string]*freqEntry)}
}

// Add folds one occurrence of word, observed at token position pos of
// the message at original index msg.
func (t *FrequencyTable) Add(word string, msg, pos int) {
	if e, ok := t.counts[word]; ok {
		e.count++
		if msg < e.firstMsg || (msg == e.firstMsg && pos < e.firstPos) {
			e.firstMsg, e.firstPos = msg, pos
		}
		return
	}
	t.counts[word] = &freqEntry{count: 1, firstMsg: msg, firstPos: pos}
}

// Merge folds other into t. Counts sum; first-seen positions take the
// minimum, so merge order never affects the outcome.
func (t *FrequencyTable) Merge(other *FrequencyTable) {
	for word, oe := range other.counts {
		e, ok := t.counts[word]
		if !ok {
			t.counts[word] = &freqEntry{count: oe.count, firstMsg: oe.firstMsg, firstPos: oe.firstPos}
			continue
		}
		e.count += oe.count
		if oe.firstMsg < e.firstMsg || (oe.firstMsg == e.firstMsg && oe.firstPos < e.firstPos) {
			e.firstMsg, e.firstPos = oe.firstMsg, oe.firstPos
		}
	}
}

// Count returns the count for word, zero when absent.
func (t *FrequencyTable) Count(word string) int {
	if e, ok := t.counts[word]; ok {
		return e.count
	}
	return 0
}

// Len returns the number of distinct words.
func (t *FrequencyTable) Len() int {
	return len(t.counts)
}

// Counts returns a copy of the word→count mapping.
func (t *FrequencyTable) Counts() map[string]int {
	out := make(map[string]int, len(t.counts))
	for w, e := range t.counts {
		out[w] = e.count
	}
	return out
}

// TopN returns the n highest-frequency words, descending by count with
// ties broken by first occurrence in the original message order.
func (t *FrequencyTable) TopN(n int) []WordFreq {
	entries := make([]struct {
		word string
		e    *freqEntry
	}, 0, len(t.counts))
	for w, e := range t.counts {
		entries = append(entries, struct {
			word string
			e    *freqEntry
		}{w, e})
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i].e, entries[j].e
		if a.count != b.count {
			return a.count > b.count
		}
		if a.firstMsg != b.firstMsg {
			return a.firstMsg < b.firstMsg
		}
		return a.firstPos < b.firstPos
	})
	if n > len(entries) {
		n = len(entries)
	}
	out := make([]WordFreq, n)
	for i := 0; i < n; i++ {
		out[i] = WordFreq{Word: entries[i].word, Count: entries[i].e.count}
	}
	return out
}

// MarshalJSON emits the word→count mapping.
func (t *FrequencyTable) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Counts())
}

// CohortFrequencies groups one frequency table per cohort.
type CohortFrequencies struct {
	All      *FrequencyTable `json:"all"`
	Sender   *FrequencyTable `json:"sender"`
	Receiver *FrequencyTable `json:"receiver"`
}

func newCohortFrequencies() CohortFrequencies {
	return CohortFrequencies{
		All:      NewFrequencyTable(),
		Sender:   NewFrequencyTable(),
		Receiver: NewFrequencyTable(),
	}
}

// Table returns the table for a cohort.
func (c CohortFrequencies) Table(cohort Cohort) *FrequencyTable {
	switch cohort {
	case CohortSender:
		return c.Sender
	case CohortReceiver:
		return c.Receiver
	default:
		return c.All
	}
}

// merge folds other's cohort tables into c.
func (c CohortFrequencies) merge(other CohortFrequencies) {
	c.All.Merge(other.All)
	c.Sender.Merge(other.Sender)
	c.Receiver.Merge(other.Receiver)
}

// fold adds one message's tokens into the cohort tables. Keywords feed
// the keyword tables; resolved emoji symbols feed the emoji tables.
// Stray bracket tokens are excluded from the counters.
func fold(keywords, emoji CohortFrequencies, msgIndex int, senderIsSelf bool, tokens []Token) {
	for pos, tok := range tokens {
		if tok.IsEmoji {
			if tok.Symbol == "" {
				continue
			}
			addToCohorts(emoji, tok.Symbol, msgIndex, pos, senderIsSelf)
			continue
		}
		if tok.Text == "[" || tok.Text == "]" {
			continue
		}
		addToCohorts(keywords, tok.Text, msgIndex, pos, senderIsSelf)
	}
}

func addToCohorts(c CohortFrequencies, word string, msg, pos int, senderIsSelf bool) {
	c.All.Add(word, msg, pos)
	if senderIsSelf {
		c.Sender.Add(word, msg, pos)
	} else {
		c.Receiver.Add(word, msg, pos)
	}
}
