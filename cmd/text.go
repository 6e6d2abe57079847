package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"toolbelt/internal/textkit"
)

var textCmd = &cobra.Command{
	Use:   "text",
	Short: "Analyze plain text files",
}

var textStatsCmd = &cobra.Command{
	Use:   "stats <file>",
	Short: "Basic text statistics",
	Args:  cobra.ExactArgs(1),
	RunE:  runTextStats,
}

var (
	wordsTop       int
	wordsStopwords bool
	wordsLang      string
)

var textWordsCmd = &cobra.Command{
	Use:   "words <file>",
	Short: "Most frequent words",
	Args:  cobra.ExactArgs(1),
	RunE:  runTextWords,
}

var textEntitiesCmd = &cobra.Command{
	Use:   "entities <file>",
	Short: "Extract emails, URLs, phones, dates, money and hashtags",
	Args:  cobra.ExactArgs(1),
	RunE:  runTextEntities,
}

var textSentimentCmd = &cobra.Command{
	Use:   "sentiment <file>",
	Short: "Keyword sentiment (English and Portuguese)",
	Args:  cobra.ExactArgs(1),
	RunE:  runTextSentiment,
}

var summarySentences int

var textSummaryCmd = &cobra.Command{
	Use:   "summary <file>",
	Short: "Extractive summary",
	Args:  cobra.ExactArgs(1),
	RunE:  runTextSummary,
}

func init() {
	rootCmd.AddCommand(textCmd)
	textCmd.AddCommand(textStatsCmd, textWordsCmd, textEntitiesCmd, textSentimentCmd, textSummaryCmd)

	textWordsCmd.Flags().IntVarP(&wordsTop, "top", "n", 10, "number of words to show")
	textWordsCmd.Flags().BoolVar(&wordsStopwords, "include-stopwords", false, "keep stopwords in the count")
	textWordsCmd.Flags().StringVar(&wordsLang, "lang", "en", "stopword language (ISO code)")

	textSummaryCmd.Flags().IntVarP(&summarySentences, "sentences", "n", 3, "number of sentences to keep")
}

func runTextStats(cmd *cobra.Command, args []string) error {
	text, err := textkit.ReadFile(args[0])
	if err != nil {
		return err
	}
	stats, err := textkit.Analyze(text)
	if err != nil {
		return err
	}

	fmt.Printf("Characters:         %d\n", stats.Characters)
	fmt.Printf("Words:              %d\n", stats.Words)
	fmt.Printf("Sentences:          %d\n", stats.Sentences)
	fmt.Printf("Unique words:       %d\n", stats.UniqueWords)
	fmt.Printf("Avg word length:    %.1f\n", stats.AvgWordLength)
	fmt.Printf("Words per sentence: %.1f\n", stats.AvgSentenceLength)
	fmt.Printf("Lexical diversity:  %.2f\n", stats.LexicalDiversity)
	return nil
}

func runTextWords(cmd *cobra.Command, args []string) error {
	text, err := textkit.ReadFile(args[0])
	if err != nil {
		return err
	}
	words, err := textkit.FrequentWords(text, wordsTop, wordsStopwords, wordsLang)
	if err != nil {
		return err
	}

	for _, wc := range words {
		fmt.Printf("%5d  %s\n", wc.Count, wc.Word)
	}
	return nil
}

func runTextEntities(cmd *cobra.Command, args []string) error {
	text, err := textkit.ReadFile(args[0])
	if err != nil {
		return err
	}
	entities := textkit.ExtractEntities(text)

	printEntityGroup("Emails", entities.Emails)
	printEntityGroup("URLs", entities.URLs)
	printEntityGroup("Phones", entities.Phones)
	printEntityGroup("Dates", entities.Dates)
	printEntityGroup("Money", entities.Money)
	printEntityGroup("Hashtags", entities.Hashtags)
	return nil
}

func printEntityGroup(label string, values []string) {
	if len(values) == 0 {
		return
	}
	fmt.Printf("%s:\n", label)
	for _, v := range values {
		fmt.Printf("  %s\n", v)
	}
}

func runTextSentiment(cmd *cobra.Command, args []string) error {
	text, err := textkit.ReadFile(args[0])
	if err != nil {
		return err
	}
	sentiment, err := textkit.AnalyzeSentiment(text)
	if err != nil {
		return err
	}

	fmt.Printf("Sentiment: %s (score %.2f)\n", sentiment.Sentiment, sentiment.Score)
	fmt.Printf("Language:  %s\n", sentiment.Language)
	fmt.Printf("Matches:   %d positive, %d negative\n", sentiment.PositiveWords, sentiment.NegativeWords)
	return nil
}

func runTextSummary(cmd *cobra.Command, args []string) error {
	text, err := textkit.ReadFile(args[0])
	if err != nil {
		return err
	}
	summary, err := textkit.Summarize(text, summarySentences)
	if err != nil {
		return err
	}

	fmt.Println(summary)
	return nil
}
