package cmd

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/drdavisdfelix/quiz/internal/taxonomy"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the topics, difficulties and question types",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for _, topic := range taxonomy.GeneralTopics() {
			subs, _ := taxonomy.SubTopics(topic)
			fmt.Fprintf(out, "%-18s %s\n", topic, strings.Join(subs, ", "))
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Difficulties:   %s\n", strings.Join(taxonomy.Difficulties(), ", "))
		types := lo.Map(taxonomy.QuestionTypes(), func(q taxonomy.QuestionType, _ int) string { return string(q) })
		fmt.Fprintf(out, "Question types: %s\n", strings.Join(types, ", "))
	},
}
