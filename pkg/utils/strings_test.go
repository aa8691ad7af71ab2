package utils

import (
	"reflect"
	"testing"
)

func TestSplitAndTrim(t *testing.T) {
	t.Run("with spaces and empty parts", func(t *testing.T) {
		got := SplitAndTrim(" a, b ,, c ", ",")
		want := []string{"a", "b", "c"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("unexpected result: %v", got)
		}
	})

	t.Run("with empty input", func(t *testing.T) {
		got := SplitAndTrim("", ",")
		if len(got) != 0 {
			t.Errorf("expected empty result, got %v", got)
		}
	})
}
