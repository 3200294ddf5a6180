package junitxml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const multiSuiteReport = `<?xml version="1.0" encoding="utf-8"?>
<testsuites>
  <testsuite name="pytest" tests="4" failures="1" errors="1" skipped="1">
    <testcase classname="tests.test_app" name="test_ok"/>
    <testcase classname="tests.test_app" name="test_broken">
      <failure message="AssertionError: expected 2 got 3">traceback here</failure>
    </testcase>
    <testcase classname="tests.test_app" name="test_crash">
      <error>ImportError: no module named widget</error>
    </testcase>
    <testcase classname="tests.test_app" name="test_later">
      <skipped message="not yet"/>
    </testcase>
  </testsuite>
</testsuites>
`

const singleSuiteReport = `<?xml version="1.0" encoding="utf-8"?>
<testsuite name="pytest" tests="1" failures="0">
  <testcase classname="tests.test_app" name="test_ok"/>
</testsuite>
`

func TestParseMultiSuite(t *testing.T) {
	sum, err := Parse([]byte(multiSuiteReport))
	require.NoError(t, err)

	assert.Equal(t, 4, sum.Tests)
	assert.Equal(t, 1, sum.Failures)
	assert.Equal(t, 1, sum.Errors)
	assert.Equal(t, 1, sum.Skipped)
	assert.False(t, sum.Passed())

	require.Len(t, sum.FailureDetails, 2)
	assert.Equal(t, "tests.test_app.test_broken: AssertionError: expected 2 got 3", sum.FailureDetails[0])
	assert.Equal(t, "tests.test_app.test_crash: ImportError: no module named widget", sum.FailureDetails[1])
}

func TestParseSingleSuiteRoot(t *testing.T) {
	sum, err := Parse([]byte(singleSuiteReport))
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Tests)
	assert.True(t, sum.Passed())
}

func TestParseGarbage(t *testing.T) {
	_, err := Parse([]byte("not xml at all"))
	assert.Error(t, err)
}
