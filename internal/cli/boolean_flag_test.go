package cli

import (
	"reflect"
	"testing"

	"github.com/spf13/cobra"
)

func TestRegisterBooleanFlagParsesValues(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		defaultValue bool
		arguments    []string
		expected     bool
		expectError  bool
	}{
		{
			name:         "defaults_to_false",
			defaultValue: false,
			arguments:    []string{},
			expected:     false,
		},
		{
			name:         "sets_true_without_value",
			defaultValue: false,
			arguments:    []string{"--clipboard"},
			expected:     true,
		},
		{
			name:         "sets_false_with_equals",
			defaultValue: true,
			arguments:    []string{"--clipboard=false"},
			expected:     false,
		},
		{
			name:         "sets_false_with_no_literal",
			defaultValue: true,
			arguments:    []string{"--clipboard", "no"},
			expected:     false,
		},
		{
			name:         "sets_true_with_on_literal",
			defaultValue: false,
			arguments:    []string{"--clipboard", "ON"},
			expected:     true,
		},
		{
			name:         "keeps_non_boolean_trailing_value_positional",
			defaultValue: false,
			arguments:    []string{"--clipboard", "./src"},
			expected:     true,
		},
		{
			name:         "rejects_invalid_equals_value",
			defaultValue: false,
			arguments:    []string{"--clipboard=maybe"},
			expectError:  true,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			command := &cobra.Command{Use: "boolean-test"}
			flagValue := !testCase.defaultValue
			registerBooleanFlag(command.Flags(), &flagValue, "clipboard", testCase.defaultValue, "copy the summary")
			normalizedArguments := normalizeBooleanFlagArguments(command, testCase.arguments)
			parseErr := command.ParseFlags(normalizedArguments)
			if testCase.expectError {
				if parseErr == nil {
					t.Fatalf("expected parse error for arguments %v", testCase.arguments)
				}
				return
			}
			if parseErr != nil {
				t.Fatalf("unexpected parse error: %v", parseErr)
			}
			if flagValue != testCase.expected {
				t.Fatalf("expected %t, got %t", testCase.expected, flagValue)
			}
		})
	}
}

func TestNormalizeBooleanFlagArgumentsAcrossSubcommands(t *testing.T) {
	rootCommand := NewRootCommand(Dependencies{})
	arguments := []string{"summarize", "--yes", "n", "--clipboard", "dir", "--output", "yes", "--", "--tokens", "1"}
	expected := []string{"summarize", "--yes=n", "--clipboard", "dir", "--output", "yes", "--", "--tokens", "1"}
	if normalized := normalizeBooleanFlagArguments(rootCommand, arguments); !reflect.DeepEqual(normalized, expected) {
		t.Fatalf("expected %v, got %v", expected, normalized)
	}
}
