package batch

import (
	"fmt"

	cdfa "Glidepath/internal/calc/cdfa"
)

type ProfileBatchInput struct {
	Items []cdfa.Input `json:"items"`
}

type ProfileBatchResult struct {
	Results []cdfa.Result `json:"results"`
}

func CalculateProfiles(in ProfileBatchInput) (ProfileBatchResult, error) {
	if len(in.Items) == 0 {
		return ProfileBatchResult{}, fmt.Errorf("no items")
	}
	out := ProfileBatchResult{Results: make([]cdfa.Result, 0, len(in.Items))}
	for _, item := range in.Items {
		res, err := cdfa.Calculate(item)
		if err != nil {
			return ProfileBatchResult{}, err
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}
