package testutils

import (
	"fmt"
	"os"
	"strconv"
	"testing"
	"text/tabwriter"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// TestCase represents a single unit test scenario.
type TestCase struct {
	Name     string
	Input    string
	Expected string
	Actual   string
	Pass     bool
}

// NewCase builds a TestCase and compares expected with actual.
func NewCase(name, input, expected, actual string) TestCase {
	return TestCase{
		Name:     name,
		Input:    input,
		Expected: expected,
		Actual:   actual,
		Pass:     expected == actual,
	}
}

// Diff returns a character level diff of expected and actual, quoted so that
// control characters like "\r" stay visible.
func Diff(expected, actual string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(strconv.Quote(expected), strconv.Quote(actual), false)
	return dmp.DiffPrettyText(diffs)
}

// PrintTestTable prints a formatted table of comparison results.
// It fails the test if any case has Pass=false and reports a diff for each failure.
func PrintTestTable(t *testing.T, cases []TestCase) {
	t.Helper()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)

	const (
		Reset = "\033[0m"
		Red   = "\033[31m"
		Green = "\033[32m"
	)

	fmt.Fprintf(w, "Input\tExpected Value\tReturned Value\t\n")

	for _, tc := range cases {
		inputColor := Reset
		expectedColor := Reset
		actualColor := Green
		leftPtr := " "
		rightPtr := " "

		if !tc.Pass {
			inputColor = Red
			expectedColor = Red
			actualColor = Red
			leftPtr = Red + ">" + Reset
			rightPtr = Red + "<" + Reset
		}

		fmt.Fprintf(w, "%s %s%s%s\t%s%s%s\t%s%s%s\t%s\n",
			leftPtr,
			inputColor, strconv.Quote(tc.Input), Reset,
			expectedColor, tc.Expected, Reset,
			actualColor, tc.Actual, Reset,
			rightPtr,
		)
	}

	w.Flush()
	fmt.Println()

	for _, tc := range cases {
		if !tc.Pass {
			t.Errorf("%s: %s", tc.Name, Diff(tc.Expected, tc.Actual))
		}
	}
}
