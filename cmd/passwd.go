package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"toolbelt/internal/password"
)

var (
	passwdLength  int
	passwdCount   int
	passwdClasses []string
	noLower       bool
	noUpper       bool
	noDigits      bool
	noSymbols     bool
)

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Generate random passwords",
	Long: `Generate cryptographically random passwords from configurable
character classes. Generated values go to stdout and are never logged or
stored anywhere.`,
	RunE: runPasswd,
}

var passwdScoreCmd = &cobra.Command{
	Use:   "score [value]",
	Short: "Estimate the strength of a password",
	Long: `Estimate how resistant a password is to guessing. Without an
argument the value is read from stdin, keeping it out of the shell history.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPasswdScore,
}

func init() {
	rootCmd.AddCommand(passwdCmd)
	passwdCmd.AddCommand(passwdScoreCmd)

	passwdCmd.Flags().IntVarP(&passwdLength, "length", "l", 16, "password length")
	passwdCmd.Flags().IntVarP(&passwdCount, "count", "n", 1, "number of passwords to generate")
	passwdCmd.Flags().StringSliceVar(&passwdClasses, "classes", nil, "character classes to draw from (lower, upper, digits, symbols)")
	passwdCmd.Flags().BoolVar(&noLower, "no-lower", false, "exclude lowercase letters")
	passwdCmd.Flags().BoolVar(&noUpper, "no-upper", false, "exclude uppercase letters")
	passwdCmd.Flags().BoolVar(&noDigits, "no-digits", false, "exclude digits")
	passwdCmd.Flags().BoolVar(&noSymbols, "no-symbols", false, "exclude symbols")
}

// passwdRequest builds the generation request from the flags. --classes wins
// over the exclusion flags.
func passwdRequest() password.Request {
	if len(passwdClasses) > 0 {
		return password.Request{Length: passwdLength, Classes: passwdClasses}
	}

	var classes []string
	if !noLower {
		classes = append(classes, password.ClassLower)
	}
	if !noUpper {
		classes = append(classes, password.ClassUpper)
	}
	if !noDigits {
		classes = append(classes, password.ClassDigits)
	}
	if !noSymbols {
		classes = append(classes, password.ClassSymbols)
	}
	return password.Request{Length: passwdLength, Classes: classes}
}

func runPasswd(cmd *cobra.Command, args []string) error {
	if passwdCount < 1 {
		return fmt.Errorf("%w: count must be at least 1", password.ErrInvalidConfiguration)
	}
	req := passwdRequest()

	for i := 0; i < passwdCount; i++ {
		value, err := password.Generate(req)
		if err != nil {
			return err
		}
		fmt.Println(value)
	}
	return nil
}

func runPasswdScore(cmd *cobra.Command, args []string) error {
	var value string
	if len(args) == 1 {
		value = args[0]
	} else {
		scanner := bufio.NewScanner(os.Stdin)
		if scanner.Scan() {
			value = scanner.Text()
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read value: %w", err)
		}
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return errors.New("no value to score")
	}

	report := password.Score(value)

	fmt.Printf("Length:     %d\n", report.Length)
	fmt.Printf("Score:      %d/4\n", report.Score)
	fmt.Printf("Entropy:    %.1f bits\n", report.Entropy)
	fmt.Printf("Crack time: %s\n", report.CrackTimeDisplay)
	fmt.Printf("Classes:    %s\n", strings.Join(report.Classes, ", "))
	return nil
}
