package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{`a,b,c`, []string{"a", "b", "c"}},
		{`"a,b",c`, []string{"a,b", "c"}},
		{`"say ""hi""",x`, []string{`say "hi"`, "x"}},
		{`""""`, []string{`"`}},
		{`a,,c,`, []string{"a", "", "c", ""}},
		{``, []string{""}},
		{`01/03/2025,"STARBUCKS #1",-42.10`, []string{"01/03/2025", "STARBUCKS #1", "-42.10"}},
		{`"CAFÉ, PARIS",€5`, []string{"CAFÉ, PARIS", "€5"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLine(tt.line), "ParseLine(%q)", tt.line)
	}
}

func TestSplitLines(t *testing.T) {
	got := splitLines("\ufeffa,b\r\n1,2\n\n3,4")
	assert.Equal(t, []string{"a,b", "1,2", "", "3,4"}, got)
}
