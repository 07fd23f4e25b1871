package surge

import "context"

// RubricEvaluationParams describes a rubric grading request.
type RubricEvaluationParams struct {
	// TextForGrading is the content to be graded.
	TextForGrading string
	// RubricText is the criteria to evaluate against.
	RubricText string
	// Prompt optionally adds instructions for how to grade.
	Prompt string
}

// RubricEvaluation is the grading decision for one evaluation.
type RubricEvaluation struct {
	// Answer reports whether the text meets the rubric criteria.
	Answer bool
	// Explanation describes the grading decision.
	Explanation string
}

// EvaluateRubric grades text against a rubric.
func (c *Client) EvaluateRubric(ctx context.Context, eval RubricEvaluationParams, opts ...CallOption) (*RubricEvaluation, error) {
	if eval.TextForGrading == "" {
		return nil, NewMissingAttributeError("Text for grading is required.")
	}
	if eval.RubricText == "" {
		return nil, NewMissingAttributeError("Rubric text is required.")
	}
	params := Params{
		"text_for_grading": eval.TextForGrading,
		"rubric_text":      eval.RubricText,
	}
	if eval.Prompt != "" {
		params["prompt"] = eval.Prompt
	}
	response, err := c.post(ctx, "evaluate_rubric", params, opts)
	if err != nil {
		return nil, err
	}
	rec, ok := asRecord(response)
	if !ok {
		return nil, NewRequestError("Expected an evaluation record in the response.", nil)
	}
	return &RubricEvaluation{
		Answer:      recordBool(rec, "answer", false),
		Explanation: recordString(rec, "explanation"),
	}, nil
}
