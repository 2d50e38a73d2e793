package cli

import (
	"fmt"
	"os"

	"sproutlog/internal/models"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// SpeciesFile is the layout of a species seed file.
type SpeciesFile struct {
	Species []models.Species `yaml:"species"`
}

// ReadSpeciesFile parses a YAML species list.
func ReadSpeciesFile(path string) ([]models.Species, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read species file: %w", err)
	}
	var file SpeciesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse species file %s: %w", path, err)
	}
	if len(file.Species) == 0 {
		return nil, fmt.Errorf("species file %s lists no species", path)
	}
	return file.Species, nil
}

func newSeedSpeciesCommand(opts *rootOptions) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "seed-species",
		Short: "Load the species reference list from a YAML file",
		Long: `Load the species reference list from a YAML file. Species whose common
name is already present are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			species, err := ReadSpeciesFile(path)
			if err != nil {
				return err
			}

			a, err := opts.open()
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := a.Gardens.SeedSpecies(species)
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "All species already present, nothing to do.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d species.\n", n)
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "file", "f", "species.yaml", "YAML file with a top-level species list")
	return cmd
}
