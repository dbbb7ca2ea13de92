package dashboard

import (
	"sort"
	"time"

	"grc/internal/domain/controls"
	"grc/internal/domain/dsr"
	"grc/internal/domain/risks"
)

type ComplianceSummary struct {
	Total                int     `json:"total"`
	Activated            int     `json:"activated"`
	Compliant            int     `json:"compliant"`
	NonCompliant         int     `json:"nonCompliant"`
	Overdue              int     `json:"overdue"`
	CompliancePercentage float64 `json:"compliancePercentage"`
}

// Summarize reduces a control collection to the headline dashboard
// numbers. An empty collection reads as 0%, never NaN.
func Summarize(instances []controls.ControlInstance, asOf time.Time) ComplianceSummary {
	summary := ComplianceSummary{Total: len(instances)}
	for _, instance := range instances {
		if instance.Active {
			summary.Activated++
		}
		switch instance.Status {
		case controls.StatusCompliant:
			summary.Compliant++
		case controls.StatusNonCompliant:
			summary.NonCompliant++
		}
		if controls.IsOverdue(instance, asOf) {
			summary.Overdue++
		}
	}
	if summary.Total > 0 {
		summary.CompliancePercentage = float64(summary.Compliant) / float64(summary.Total) * 100
	}
	return summary
}

type StandardProgress struct {
	StandardID        string  `json:"standardId"`
	Standard          string  `json:"standard"`
	TotalControls     int     `json:"totalControls"`
	ActivatedControls int     `json:"activatedControls"`
	CompliantControls int     `json:"compliantControls"`
	Percentage        float64 `json:"percentage"`
}

// ProgressByStandard groups controls by standard and orders the result
// by percentage descending, ties broken by standard name ascending, so
// repeated runs over the same input always render identically.
func ProgressByStandard(instances []controls.ControlInstance) []StandardProgress {
	byStandard := map[string]*StandardProgress{}
	for _, instance := range instances {
		progress, ok := byStandard[instance.StandardID]
		if !ok {
			progress = &StandardProgress{StandardID: instance.StandardID, Standard: instance.StandardName}
			byStandard[instance.StandardID] = progress
		}
		progress.TotalControls++
		if instance.Active {
			progress.ActivatedControls++
		}
		if instance.Status == controls.StatusCompliant {
			progress.CompliantControls++
		}
	}

	out := make([]StandardProgress, 0, len(byStandard))
	for _, progress := range byStandard {
		if progress.TotalControls > 0 {
			progress.Percentage = float64(progress.CompliantControls) / float64(progress.TotalControls) * 100
		}
		out = append(out, *progress)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Percentage != out[j].Percentage {
			return out[i].Percentage > out[j].Percentage
		}
		return out[i].Standard < out[j].Standard
	})
	return out
}

type MatrixCell struct {
	Likelihood int `json:"likelihood"`
	Impact     int `json:"impact"`
	Count      int `json:"count"`
}

// RiskMatrix builds the 5x5 heat-map grid keyed by inherent likelihood
// and impact. Every cell is present; empty cells carry a zero count.
// Assessments outside the 1..5 scale are skipped rather than misfiled.
func RiskMatrix(assessments []risks.RiskAssessment) []MatrixCell {
	counts := [risks.ScaleMax][risks.ScaleMax]int{}
	for _, assessment := range assessments {
		if assessment.Likelihood < risks.ScaleMin || assessment.Likelihood > risks.ScaleMax {
			continue
		}
		if assessment.Impact < risks.ScaleMin || assessment.Impact > risks.ScaleMax {
			continue
		}
		counts[assessment.Likelihood-1][assessment.Impact-1]++
	}

	cells := make([]MatrixCell, 0, risks.ScaleMax*risks.ScaleMax)
	for likelihood := risks.ScaleMin; likelihood <= risks.ScaleMax; likelihood++ {
		for impact := risks.ScaleMin; impact <= risks.ScaleMax; impact++ {
			cells = append(cells, MatrixCell{
				Likelihood: likelihood,
				Impact:     impact,
				Count:      counts[likelihood-1][impact-1],
			})
		}
	}
	return cells
}

type DSRSummary struct {
	Open    int            `json:"open"`
	Overdue int            `json:"overdue"`
	DueSoon int            `json:"dueSoon"`
	ByType  map[string]int `json:"byType"`
}

// SummarizeDSR reduces a request collection to the dashboard block.
// Terminal requests count toward neither open nor urgency totals.
func SummarizeDSR(requests []dsr.Request, asOf time.Time) DSRSummary {
	summary := DSRSummary{ByType: map[string]int{}}
	for _, t := range dsr.RequestTypes {
		summary.ByType[t] = 0
	}
	for _, request := range requests {
		summary.ByType[request.RequestType]++
		band, ok := dsr.Urgency(request, asOf)
		if !ok {
			continue
		}
		summary.Open++
		switch band {
		case dsr.BandOverdue:
			summary.Overdue++
		case dsr.BandDueSoon:
			summary.DueSoon++
		}
	}
	return summary
}
