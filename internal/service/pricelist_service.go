package service

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/pharmreg_api/internal/models"
	"github.com/GTDGit/pharmreg_api/internal/search"
	"github.com/GTDGit/pharmreg_api/internal/utils"
)

// RuleLeadingRow names the rule that takes package flags from the first resolved row.
const RuleLeadingRow = "leadingRow"

// PriceStore reads pcpricelist rows.
type PriceStore interface {
	Current(ctx context.Context, drdpID string) ([]models.PriceRow, error)
	History(ctx context.Context, drdpID string) ([]models.PriceRow, error)
	Packages(ctx context.Context, drugID string, pricedOnly bool, page search.Page) ([]models.PackageRef, error)
}

type PriceListService struct {
	repo PriceStore
}

func NewPriceListService(repo PriceStore) *PriceListService {
	return &PriceListService{repo: repo}
}

// Resolve returns the price rows of a package with its representative flags.
// The history query is tried when the primary one comes back empty.
func (s *PriceListService) Resolve(ctx context.Context, drdpID string) (*models.PriceList, error) {
	rows, err := s.repo.Current(ctx, drdpID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		if rows, err = s.repo.History(ctx, drdpID); err != nil {
			return nil, err
		}
	}
	if len(rows) == 0 {
		return nil, utils.NotFound("No price list found")
	}

	flags := FlagsFromLeadingRow(rows)
	if flags.Ambiguous {
		log.Warn().
			Str("drdpid", drdpID).
			Str("source_datefrom", flags.SourceDateFrom).
			Msg("Active price rows disagree on misyfa/negative")
	}

	return &models.PriceList{Results: rows, Total: len(rows), Flags: flags}, nil
}

// FlagsFromLeadingRow takes misyfa and negative from the first row in
// resolution order. Ambiguous is set when several ACTIVE rows carry
// different flags.
func FlagsFromLeadingRow(rows []models.PriceRow) models.PriceFlags {
	if len(rows) == 0 {
		return models.PriceFlags{Rule: RuleLeadingRow}
	}
	lead := rows[0]
	flags := models.PriceFlags{
		Misyfa:         lead.Misyfa,
		Negative:       lead.Negative,
		Rule:           RuleLeadingRow,
		SourceDateFrom: lead.DateFrom,
	}

	var first *models.PriceRow
	for i := range rows {
		if rows[i].Status != models.PriceActive {
			continue
		}
		if first == nil {
			first = &rows[i]
			continue
		}
		if rows[i].Misyfa != first.Misyfa || rows[i].Negative != first.Negative {
			flags.Ambiguous = true
			break
		}
	}
	return flags
}

// PackageOptions lists packages for the price-list pickers, sorted by label.
func (s *PriceListService) PackageOptions(ctx context.Context, drugID string, pricedOnly bool, page search.Page) ([]models.PackageOption, error) {
	refs, err := s.repo.Packages(ctx, strings.TrimSpace(drugID), pricedOnly, page)
	if err != nil {
		return nil, err
	}

	out := make([]models.PackageOption, 0, len(refs))
	for _, r := range refs {
		out = append(out, packageOption(r))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, nil
}

// packageOption labels a package "packnr patext", or "ID: drdpid" when both are blank.
func packageOption(r models.PackageRef) models.PackageOption {
	var packNr, paText string
	if r.PackNr != nil {
		packNr = *r.PackNr
	}
	if r.PaText != nil {
		paText = *r.PaText
	}
	label := strings.TrimSpace(packNr + " " + paText)
	if label == "" {
		label = "ID: " + r.DrdpID
	}
	return models.PackageOption{
		Value:  r.DrdpID,
		Label:  label,
		DrdpID: r.DrdpID,
		PackNr: packNr,
		PaText: paText,
	}
}
