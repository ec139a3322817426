package watcher

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func Test_Debouncer_CollapsesBurstIntoOneBatch(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	d.Add("/p/compile_commands.json")
	d.Add("/p/compile_flags.txt")
	d.Add("/p/compile_commands.json") // duplicate within the window

	select {
	case batch := <-d.Output():
		want := []string{"/p/compile_commands.json", "/p/compile_flags.txt"}
		if diff := cmp.Diff(want, batch); diff != "" {
			t.Errorf("batch mismatch (-want +got):\n%s", diff)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the debounced batch")
	}

	// No second batch without new events.
	select {
	case batch := <-d.Output():
		t.Errorf("unexpected second batch: %v", batch)
	case <-time.After(100 * time.Millisecond):
	}
}

func Test_Debouncer_SeparateQuietPeriodsEmitSeparateBatches(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)

	d.Add("/p/compile_commands.json")
	select {
	case <-d.Output():
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the first batch")
	}

	d.Add("/p/compile_flags.txt")
	select {
	case batch := <-d.Output():
		if diff := cmp.Diff([]string{"/p/compile_flags.txt"}, batch); diff != "" {
			t.Errorf("second batch mismatch (-want +got):\n%s", diff)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the second batch")
	}
}
