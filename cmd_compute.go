package main

import (
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"faraid-engine/internal/model"
)

var computeFlags struct {
	file      string
	estate    string
	currency  string
	reference string
	heirs     model.HeirSet
}

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute a distribution and print it as JSON",
	Example: `  faraid compute --estate 800000 --wife --sons 1
  faraid compute --file request.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := buildRequest(cmd.InOrStdin())
		if err != nil {
			return err
		}

		resp := eng.Process(req)

		out, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return eris.Wrap(err, "compute: encode response")
		}
		if _, err := cmd.OutOrStdout().Write(append(out, '\n')); err != nil {
			return eris.Wrap(err, "compute: write response")
		}

		if resp.CalculationMetadata.CalculationOutcome == model.OutcomeFailure {
			return eris.New("compute: calculation failed")
		}
		return nil
	},
}

// buildRequest reads a request from --file ("-" for stdin) or assembles one
// from the heir flags.
func buildRequest(stdin io.Reader) (*model.CalculationRequest, error) {
	if computeFlags.file != "" {
		r := stdin
		if computeFlags.file != "-" {
			f, err := os.Open(computeFlags.file)
			if err != nil {
				return nil, eris.Wrap(err, "compute: open request file")
			}
			defer f.Close()
			r = f
		}
		var req model.CalculationRequest
		if err := json.NewDecoder(r).Decode(&req); err != nil {
			return nil, eris.Wrap(err, "compute: decode request")
		}
		return &req, nil
	}

	net, err := decimal.NewFromString(computeFlags.estate)
	if err != nil {
		return nil, eris.Wrapf(err, "compute: parse --estate %q", computeFlags.estate)
	}
	return &model.CalculationRequest{
		Reference: computeFlags.reference,
		Heirs:     computeFlags.heirs,
		Estate:    model.Estate{NetValue: net, Currency: computeFlags.currency},
	}, nil
}

func init() {
	f := computeCmd.Flags()
	f.StringVar(&computeFlags.file, "file", "", "read the calculation request from a JSON file (- for stdin)")
	f.StringVar(&computeFlags.estate, "estate", "0", "net estate value after debts and bequests")
	f.StringVar(&computeFlags.currency, "currency", "", "currency code, informational only")
	f.StringVar(&computeFlags.reference, "reference", "", "caller reference echoed in the response")

	h := &computeFlags.heirs
	f.BoolVar(&h.HasSpouseHusband, "husband", false, "husband survives")
	f.BoolVar(&h.HasSpouseWife, "wife", false, "wife survives")
	f.BoolVar(&h.HasFather, "father", false, "father survives")
	f.BoolVar(&h.HasMother, "mother", false, "mother survives")
	f.IntVar(&h.SonCount, "sons", 0, "number of sons")
	f.IntVar(&h.DaughterCount, "daughters", 0, "number of daughters")
	f.IntVar(&h.GrandsonCount, "grandsons", 0, "number of son's sons")
	f.IntVar(&h.GranddaughterCount, "granddaughters", 0, "number of son's daughters")
	f.IntVar(&h.BrotherCount, "brothers", 0, "number of brothers")
	f.IntVar(&h.SisterCount, "sisters", 0, "number of sisters")
	f.IntVar(&h.NephewCount, "nephews", 0, "number of brother's sons")
	f.IntVar(&h.UncleCount, "uncles", 0, "number of paternal uncles")

	rootCmd.AddCommand(computeCmd)
}
