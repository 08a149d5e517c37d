package haiku

import (
	"reflect"
	"testing"
)

func TestTrimLines(t *testing.T) {
	t.Parallel()

	got := trimLines([]string{"  spring rain  ", "\tfalls on the ledger\n", "quiet"})
	want := []string{"spring rain", "falls on the ledger", "quiet"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("trimLines() = %v, want %v", got, want)
	}

	if got := trimLines(nil); len(got) != 0 {
		t.Fatalf("trimLines(nil) = %v, want empty", got)
	}
}
