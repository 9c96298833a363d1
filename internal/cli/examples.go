package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/solhealth/consulta/internal/model"
	"github.com/solhealth/consulta/internal/pipeline"
)

var examplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "Show example questions per intent",
	Run: func(cmd *cobra.Command, args []string) {
		examples := pipeline.ExampleQueries()

		intents := make([]model.Intent, 0, len(examples))
		for intent := range examples {
			intents = append(intents, intent)
		}
		sort.Slice(intents, func(i, j int) bool { return intents[i] < intents[j] })

		for _, intent := range intents {
			fmt.Printf("%s:\n", intent)
			for _, q := range examples[intent] {
				fmt.Printf("  - %s\n", q)
			}
			fmt.Println()
		}
	},
}

func init() {
	rootCmd.AddCommand(examplesCmd)
}
