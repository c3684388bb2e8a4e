package analyzer

import (
	"context"
	"errors"
	"testing"

	"github.com/ikawaha/kagome/v2/tokenizer"

	"jpsegment/morph"
	"jpsegment/postag"
)

func TestModeKagomeMode(t *testing.T) {
	cases := []struct {
		mode Mode
		want tokenizer.TokenizeMode
	}{
		{ModeNormal, tokenizer.Normal},
		{ModeSearch, tokenizer.Search},
		{ModeExtended, tokenizer.Extended},
		{Mode(99), tokenizer.Normal},
	}
	for _, c := range cases {
		if got := c.mode.kagomeMode(); got != c.want {
			t.Errorf("Mode(%d).kagomeMode() = %v, want %v", c.mode, got, c.want)
		}
	}
}

func TestStubAnalyzeReturnsFixedMorphemes(t *testing.T) {
	want := []morph.Morpheme{{Text: "本", PartOfSpeech: postag.Noun}}
	s := Stub{Morphemes: want}
	got, err := s.Analyze(context.Background(), "anything", ModeNormal)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(got) != 1 || got[0].Text != "本" {
		t.Errorf("Analyze = %+v, want %+v", got, want)
	}
}

func TestKagomeAnalyzeEmptyTextReturnsNil(t *testing.T) {
	k := &Kagome{}
	out, err := k.Analyze(context.Background(), "", ModeNormal)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if out != nil {
		t.Errorf("Analyze(\"\") = %+v, want nil", out)
	}
}

func TestKagomeAnalyzeNilTokenizerReturnsNil(t *testing.T) {
	k := &Kagome{}
	out, err := k.Analyze(context.Background(), "本を読む", ModeNormal)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if out != nil {
		t.Errorf("Analyze with nil tokenizer = %+v, want nil", out)
	}
}

func TestKagomeAnalyzeHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	k := &Kagome{}
	_, err := k.Analyze(ctx, "本", ModeNormal)
	if err == nil || !errors.Is(err, context.Canceled) {
		t.Errorf("Analyze with cancelled context = %v, want context.Canceled", err)
	}
}
