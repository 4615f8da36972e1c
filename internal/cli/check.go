package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/abelbrown/factguard/internal/factcheck"
	"github.com/abelbrown/factguard/internal/logging"
	"github.com/abelbrown/factguard/internal/ui/results"
	"github.com/spf13/cobra"
)

var (
	checkText string
	checkURL  string
	checkJSON bool
)

// backend is the subset of the API client the check command needs.
type backend interface {
	ExtractClaims(ctx context.Context, req factcheck.ExtractRequest) ([]factcheck.Claim, error)
	Check(ctx context.Context, req factcheck.CheckRequest) (*factcheck.Results, error)
}

// checkCmd runs extract and check back to back, keeping every claim.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check text or a URL without the interactive client",
	Long: `Extract claims from --text or --url, submit all of them for verification,
and print the verdict. Use --json for the raw service response.`,
	Example: `  factguard check --text "The Great Wall is visible from space"
  factguard check --url https://example.com/article --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		logging.SetOutput(cmd.ErrOrStderr(), cfg.Log.Level)
		return runCheck(ctx, newClient(cfg), checkText, checkURL, checkJSON, cmd.OutOrStdout())
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkText, "text", "", "text to check")
	checkCmd.Flags().StringVar(&checkURL, "url", "", "URL of a page to check")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "print the service response as JSON")
}

func runCheck(ctx context.Context, b backend, text, url string, asJSON bool, w io.Writer) error {
	text = strings.TrimSpace(text)
	url = strings.TrimSpace(url)
	if text == "" && url == "" {
		return factcheck.NewValidationError(factcheck.OpExtract, "provide --text or --url")
	}

	logging.Debug("extracting claims", "text_len", len(text), "url", url)
	claims, err := b.ExtractClaims(ctx, factcheck.NewExtractRequest(text, url))
	if err != nil {
		return err
	}
	if len(claims) == 0 {
		return factcheck.NewEmptyResultError()
	}

	logging.Debug("checking claims", "count", len(claims))
	res, err := b.Check(ctx, factcheck.NewCheckRequest(text, url, claims))
	if err != nil {
		return err
	}
	if res == nil {
		return factcheck.NewTransportError(factcheck.OpCheck, 0, "empty response", nil)
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(res)
	}
	printReport(w, res)
	return nil
}

// printReport writes a plain-text rendition of the results panel.
func printReport(w io.Writer, r *factcheck.Results) {
	icon, label := results.Verdict(r.IsFact)
	fmt.Fprintf(w, "%s %s (confidence %d%%)\n", icon, label, r.ConfidencePercent())
	if expl := strings.TrimSpace(r.Explanation); expl != "" {
		fmt.Fprintf(w, "\n%s\n", expl)
	}

	if len(r.Claims) > 0 {
		fmt.Fprintf(w, "\nClaims (%d):\n", len(r.Claims))
		for i, c := range r.Claims {
			if c.Tag != "" {
				fmt.Fprintf(w, "  %d. %s [%s]\n", i+1, c.Text, c.Tag)
			} else {
				fmt.Fprintf(w, "  %d. %s\n", i+1, c.Text)
			}
		}
	}

	sources := r.AllSources()
	fmt.Fprintf(w, "\nSources (%d):\n", len(sources))
	if len(sources) == 0 {
		fmt.Fprintln(w, "  No relevant sources were found")
	}
	for _, s := range sources {
		title := s.Title
		if title == "" {
			title = "Untitled source"
		}
		fmt.Fprintf(w, "  - %s (%s, %s)\n", title, results.SourceTypeLabel(s.SourceType), results.Contribution(s.ContributionScore))
		if s.Link != "" {
			fmt.Fprintf(w, "    %s\n", s.Link)
		}
	}

	if len(r.Discrepancies) > 0 {
		fmt.Fprintf(w, "\nDiscrepancies (%d):\n", len(r.Discrepancies))
		for _, d := range r.Discrepancies {
			fmt.Fprintf(w, "  - %s\n    contradicted by: %s\n    %s\n", d.Claim, d.Source.Title, d.Explanation)
		}
	}
}
