package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/autoinsight/internal/sentiment"
	"github.com/KaramelBytes/autoinsight/internal/utils"
	"github.com/spf13/cobra"
)

var (
	sentCustom   bool
	sentProvider string
	sentJSON     bool
)

var sentimentCmd = &cobra.Command{
	Use:   "sentiment <text...>",
	Short: "Score the sentiment of a piece of text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		analyzer, err := newSentimentAnalyzer(currentConfig(), sentProvider)
		if err != nil {
			return err
		}
		text := strings.Join(args, " ")
		var res sentiment.Result
		if sentCustom {
			res, err = analyzer.PredictCustom(cmdContext(cmd), text)
		} else {
			res, err = analyzer.Predict(cmdContext(cmd), text)
		}
		if err != nil {
			return err
		}
		if sentJSON {
			b, err := utils.PrettyJSON(res)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Sentiment: %s (score %.2f)\n", res.Sentiment, res.Score)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sentimentCmd)
	sentimentCmd.Flags().BoolVar(&sentCustom, "custom", false, "check the keyword override table before scoring")
	sentimentCmd.Flags().StringVar(&sentProvider, "provider", "", "sentiment scorer: lexicon | ollama (overrides config)")
	sentimentCmd.Flags().BoolVar(&sentJSON, "json", false, "print the result as JSON")
}
