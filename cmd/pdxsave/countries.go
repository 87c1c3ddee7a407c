package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/spf13/cobra"

	"github.com/pdxtools/pdxsave"
	"github.com/pdxtools/pdxsave/extract"
)

func countriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "countries <save-file>",
		Short: "Stream country finances from a save file as JSON",
		Long: `Streams country entries without loading the full save, so population
fields stay zero; use batch for province-level population data.

The --filter expression sees one country at a time, for example:
  pdxsave countries save.v2 --filter 'treasury > 100000'
  pdxsave countries save.v2 --filter 'infamy >= 25 && civilized'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, _ := cmd.Flags().GetString("filter")
			lenient, _ := cmd.Flags().GetBool("lenient")
			return runCountries(args[0], filter, lenient)
		},
	}
	cmd.Flags().String("filter", "", "boolean expression selecting countries")
	cmd.Flags().Bool("lenient", false, "keep going past recoverable errors")
	return cmd
}

func runCountries(path, filter string, lenient bool) error {
	var program *vm.Program
	if filter != "" {
		var err error
		program, err = expr.Compile(filter, expr.AsBool())
		if err != nil {
			return fmt.Errorf("compile filter: %w", err)
		}
	}

	var opts []pdxsave.Option
	if lenient {
		opts = append(opts, pdxsave.Lenient())
	}
	stream, err := pdxsave.EntriesFile(path, pdxsave.MatchTags, opts...)
	if err != nil {
		return err
	}

	countries := make(map[string]CountryJSON)
	for stream.Next() {
		tag := stream.Key()
		if !extract.IsCountryTag(tag) || !stream.Node().IsMap() {
			continue
		}
		c := extract.CountryData(tag, stream.Node(), nil)
		if program != nil {
			keep, err := runFilter(program, c)
			if err != nil {
				return fmt.Errorf("filter %s: %w", tag, err)
			}
			if !keep {
				continue
			}
		}
		countries[tag] = countryJSON(c)
	}
	if err := stream.Err(); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(countries)
}

// runFilter evaluates the filter against a flat view of one country's
// block-level fields.
func runFilter(program *vm.Program, c extract.Country) (bool, error) {
	env := map[string]any{
		"tag":       c.Tag,
		"treasury":  c.Treasury,
		"prestige":  c.Prestige,
		"infamy":    c.Infamy,
		"tax_base":  c.TaxBase,
		"civilized": c.Civilized,

		"bank_reserves":   c.BankReserves,
		"bank_money_lent": c.BankMoneyLent,

		"rich_tax_rate":    c.RichTaxRate,
		"middle_tax_rate":  c.MiddleTaxRate,
		"poor_tax_rate":    c.PoorTaxRate,
		"total_tax_income": c.TotalTaxIncome(),

		"education_spending": c.EducationSpending,
		"military_spending":  c.MilitarySpending,
		"social_spending":    c.SocialSpending,

		"factory_count":      c.FactoryCount,
		"factory_levels":     c.FactoryLevels,
		"factory_income":     c.FactoryIncome,
		"factory_employment": c.FactoryEmployment,
	}
	out, err := expr.Run(program, env)
	if err != nil {
		return false, err
	}
	keep, ok := out.(bool)
	return ok && keep, nil
}
