package testing_assert

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// Assert fails the test if the condition is false.
func Assert(tb testing.TB, condition bool, msg string, v ...interface{}) {
	tb.Helper()
	require.Truef(tb, condition, msg, v...)
}

// AssertFalse fails the test if the condition is true.
func AssertFalse(tb testing.TB, condition bool, msg string, v ...interface{}) {
	tb.Helper()
	require.Falsef(tb, condition, msg, v...)
}

func SimpleAssert(tb testing.TB, condition bool) {
	tb.Helper()
	require.True(tb, condition)
}

// Ok fails the test if an err is not nil.
func Ok(tb testing.TB, err error) {
	tb.Helper()
	require.NoError(tb, err)
}

// Nok fails the test if an err is nil.
func Nok(tb testing.TB, err error, msg string) {
	tb.Helper()
	require.Error(tb, err, msg)
}

// ErrorIs fails the test unless err wraps target.
func ErrorIs(tb testing.TB, err error, target error) {
	tb.Helper()
	require.ErrorIs(tb, err, target)
}

// Equals fails the test if exp is not equal to act.
func Equals(tb testing.TB, exp, act interface{}) {
	tb.Helper()
	require.Equal(tb, exp, act, fmt.Sprintf("exp: %#v got: %#v", exp, act))
}

// InDelta fails the test if exp and act differ by more than delta.
func InDelta(tb testing.TB, exp, act float64, delta float64) {
	tb.Helper()
	require.InDelta(tb, exp, act, delta)
}
