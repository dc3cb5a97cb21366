package chatanalysis

import (
	"reflect"
	"testing"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		text     string
		expected []string
		desc     string
	}{
		{
			"今天去哪里。明天呢？",
			[]string{"今天去哪里。", "明天呢？"},
			"basic CJK split",
		},
		{
			"真的吗？！太好了！！！",
			[]string{"真的吗？！", "太好了！！！"},
			"punctuation runs stay attached",
		},
		{
			"没有标点的一句话",
			[]string{"没有标点的一句话"},
			"no terminal punctuation is one sentence",
		},
		{
			"最后没有句号。还有一半",
			[]string{"最后没有句号。", "还有一半"},
			"trailing fragment kept",
		},
		{
			"",
			nil,
			"empty text",
		},
		{
			"   ",
			nil,
			"whitespace only",
		},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got := SplitSentences(tt.text)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("SplitSentences(%q)\n got: %q\nwant: %q", tt.text, got, tt.expected)
			}
		})
	}
}

func TestSplitSentencesLatin(t *testing.T) {
	got := SplitSentences("I miss you. See you tomorrow!")
	if len(got) != 2 {
		t.Fatalf("Latin text split into %d sentences, want 2: %q", len(got), got)
	}
	if got[0] != "I miss you." {
		t.Errorf("First sentence = %q, want %q", got[0], "I miss you.")
	}
}

func TestSplitSentencesLatinNoBreak(t *testing.T) {
	// A decimal point is not treated as a CJK terminal, and with no
	// Latin letters the Punkt path is skipped.
	got := SplitSentences("价格是3.5元")
	want := []string{"价格是3.5元"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitSentences = %q, want %q", got, want)
	}
}
