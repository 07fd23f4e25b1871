package surge

import (
	"context"
	"fmt"
)

// Question type tag constants. The tag fully determines which optional
// attributes are meaningful and is fixed at construction.
const (
	QuestionTypeFreeResponse   = "free_response"
	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeLikert         = "likert"
	QuestionTypeCheckbox       = "checkbox"
	QuestionTypeTextTagging    = "text_tagging"
	QuestionTypeTreeSelection  = "tree_selection"
	QuestionTypeFileUpload     = "file_upload"
	QuestionTypeRanking        = "ranking"
	QuestionTypeChatBot        = "chat_bot"
	QuestionTypeTextArea       = "text"
)

// Question represents any question variant a project can pose to workers.
type Question interface {
	// QuestionType returns the wire-format type tag.
	QuestionType() string
	// ToParams flattens the question to its wire-format mapping,
	// including the type tag.
	ToParams() Params
	// Fields exposes the attributes shared by every variant.
	Fields() *QuestionFields
}

// QuestionFields holds the attributes shared by every question variant.
type QuestionFields struct {
	// ID is empty until the question has been created server-side.
	ID    string
	Text  string
	Label string
	// Required defaults to true for most variants; file upload, ranking,
	// chat bot and text area default to false.
	Required         bool
	ColumnHeader     string
	QuestionCategory string
	CarouselRound    int
	// PreexistingAnnotations names a task data key used to prepopulate a
	// default answer.
	PreexistingAnnotations string
	// RequireTiebreaker assigns an extra worker when workers disagree.
	RequireTiebreaker bool
	// HiddenByOptionID and ShownByOptionID wire conditional visibility to
	// another question's option.
	HiddenByOptionID string
	ShownByOptionID  string
	Holistic         bool
	// UseForSerialCollection is the deprecated predecessor of carousels.
	UseForSerialCollection bool
	// OptionsInfo carries per-option metadata, present only once the
	// question exists server-side.
	OptionsInfo []Params
}

// Fields returns the shared attribute set.
func (f *QuestionFields) Fields() *QuestionFields {
	return f
}

// baseParams flattens the shared attributes, tagged with the given type.
// The server ignores fields it does not expect for a given type.
func (f *QuestionFields) baseParams(tag string) Params {
	params := Params{
		"type":                      tag,
		"text":                      f.Text,
		"label":                     f.Label,
		"required":                  f.Required,
		"column_header":             f.ColumnHeader,
		"question_category":         f.QuestionCategory,
		"carousel_round":            f.CarouselRound,
		"preexisting_annotations":   f.PreexistingAnnotations,
		"require_tiebreaker":        f.RequireTiebreaker,
		"hidden_by_option_id":       f.HiddenByOptionID,
		"shown_by_option_id":        f.ShownByOptionID,
		"holistic":                  f.Holistic,
		"use_for_serial_collection": f.UseForSerialCollection,
	}
	if f.ID != "" {
		params["id"] = f.ID
	}
	if f.OptionsInfo != nil {
		infos := make([]Params, len(f.OptionsInfo))
		for i, info := range f.OptionsInfo {
			infos[i] = copyParams(info)
		}
		params["options_info"] = infos
	}
	return params
}

// parseQuestionFields fills the shared attributes from a raw record.
// requiredDefault is the variant's default for the required flag.
func parseQuestionFields(rec Params, requiredDefault bool) QuestionFields {
	fields := QuestionFields{
		ID:                     recordString(rec, "id"),
		Text:                   recordString(rec, "text"),
		Label:                  recordString(rec, "label"),
		Required:               recordBool(rec, "required", requiredDefault),
		ColumnHeader:           recordString(rec, "column_header"),
		QuestionCategory:       recordString(rec, "question_category"),
		CarouselRound:          recordInt(rec, "carousel_round"),
		PreexistingAnnotations: recordString(rec, "preexisting_annotations"),
		RequireTiebreaker:      recordBool(rec, "require_tiebreaker", false),
		HiddenByOptionID:       recordString(rec, "hidden_by_option_id"),
		ShownByOptionID:        recordString(rec, "shown_by_option_id"),
		Holistic:               recordBool(rec, "holistic", false),
		UseForSerialCollection: recordBool(rec, "use_for_serial_collection", false),
	}
	if infos := recordSlice(rec["options_info"]); infos != nil {
		cleaned := make([]Params, 0, len(infos))
		for _, info := range infos {
			copied := copyParams(info)
			// created_at/updated_at are server-side bookkeeping with no
			// meaning on the client-held copy.
			delete(copied, "created_at")
			delete(copied, "updated_at")
			cleaned = append(cleaned, copied)
		}
		fields.OptionsInfo = cleaned
	}
	return fields
}

// FreeResponseQuestion asks workers for free-form text.
type FreeResponseQuestion struct {
	QuestionFields
}

// NewFreeResponseQuestion creates a free response question with the
// variant's defaults.
func NewFreeResponseQuestion(text string) *FreeResponseQuestion {
	return &FreeResponseQuestion{QuestionFields: QuestionFields{Text: text, Required: true}}
}

// QuestionType returns the type tag for FreeResponseQuestion.
func (q *FreeResponseQuestion) QuestionType() string { return QuestionTypeFreeResponse }

// ToParams flattens the question to wire format.
func (q *FreeResponseQuestion) ToParams() Params {
	return q.baseParams(QuestionTypeFreeResponse)
}

// MultipleChoiceQuestion asks workers to pick exactly one option.
type MultipleChoiceQuestion struct {
	QuestionFields
	Options []string
	// Descriptions is parallel to Options.
	Descriptions []string
}

// NewMultipleChoiceQuestion creates a multiple choice question with the
// variant's defaults.
func NewMultipleChoiceQuestion(text string, options ...string) *MultipleChoiceQuestion {
	return &MultipleChoiceQuestion{
		QuestionFields: QuestionFields{Text: text, Required: true},
		Options:        options,
	}
}

// QuestionType returns the type tag for MultipleChoiceQuestion.
func (q *MultipleChoiceQuestion) QuestionType() string { return QuestionTypeMultipleChoice }

// ToParams flattens the question to wire format.
func (q *MultipleChoiceQuestion) ToParams() Params {
	params := q.baseParams(QuestionTypeMultipleChoice)
	params["options"] = append([]string{}, q.Options...)
	params["descriptions"] = append([]string{}, q.Descriptions...)
	return params
}

// LikertQuestion asks workers to rate on an ordered scale.
type LikertQuestion struct {
	QuestionFields
	Options      []string
	Descriptions []string
}

// NewLikertQuestion creates a likert question with the variant's defaults.
func NewLikertQuestion(text string, options ...string) *LikertQuestion {
	return &LikertQuestion{
		QuestionFields: QuestionFields{Text: text, Required: true},
		Options:        options,
	}
}

// QuestionType returns the type tag for LikertQuestion.
func (q *LikertQuestion) QuestionType() string { return QuestionTypeLikert }

// ToParams flattens the question to wire format.
func (q *LikertQuestion) ToParams() Params {
	params := q.baseParams(QuestionTypeLikert)
	params["options"] = append([]string{}, q.Options...)
	params["descriptions"] = append([]string{}, q.Descriptions...)
	return params
}

// CheckboxQuestion asks workers to pick any number of options.
type CheckboxQuestion struct {
	QuestionFields
	Options      []string
	Descriptions []string
}

// NewCheckboxQuestion creates a checkbox question with the variant's
// defaults.
func NewCheckboxQuestion(text string, options ...string) *CheckboxQuestion {
	return &CheckboxQuestion{
		QuestionFields: QuestionFields{Text: text, Required: true},
		Options:        options,
	}
}

// QuestionType returns the type tag for CheckboxQuestion.
func (q *CheckboxQuestion) QuestionType() string { return QuestionTypeCheckbox }

// ToParams flattens the question to wire format.
func (q *CheckboxQuestion) ToParams() Params {
	params := q.baseParams(QuestionTypeCheckbox)
	params["options"] = append([]string{}, q.Options...)
	params["descriptions"] = append([]string{}, q.Descriptions...)
	return params
}

// TextTaggingQuestion asks workers to tag spans of a text.
type TextTaggingQuestion struct {
	QuestionFields
	Options []string
	// TokenGranularity controls the smallest taggable unit.
	TokenGranularity      string
	AllowRelationshipTags bool
	AllowOverlappingTags  bool
}

// NewTextTaggingQuestion creates a text tagging question with the
// variant's defaults.
func NewTextTaggingQuestion(text string, options ...string) *TextTaggingQuestion {
	return &TextTaggingQuestion{
		QuestionFields: QuestionFields{Text: text, Required: true},
		Options:        options,
	}
}

// QuestionType returns the type tag for TextTaggingQuestion.
func (q *TextTaggingQuestion) QuestionType() string { return QuestionTypeTextTagging }

// ToParams flattens the question to wire format.
func (q *TextTaggingQuestion) ToParams() Params {
	params := q.baseParams(QuestionTypeTextTagging)
	params["options"] = append([]string{}, q.Options...)
	params["token_granularity"] = q.TokenGranularity
	params["allow_relationship_tags"] = q.AllowRelationshipTags
	params["allow_overlapping_tags"] = q.AllowOverlappingTags
	return params
}

// TreeSelectionQuestion asks workers to pick from a hierarchical option
// tree.
type TreeSelectionQuestion struct {
	QuestionFields
	Options      []string
	Descriptions []string
}

// NewTreeSelectionQuestion creates a tree selection question with the
// variant's defaults.
func NewTreeSelectionQuestion(text string, options ...string) *TreeSelectionQuestion {
	return &TreeSelectionQuestion{
		QuestionFields: QuestionFields{Text: text, Required: true},
		Options:        options,
	}
}

// QuestionType returns the type tag for TreeSelectionQuestion.
func (q *TreeSelectionQuestion) QuestionType() string { return QuestionTypeTreeSelection }

// ToParams flattens the question to wire format.
func (q *TreeSelectionQuestion) ToParams() Params {
	params := q.baseParams(QuestionTypeTreeSelection)
	params["options"] = append([]string{}, q.Options...)
	params["descriptions"] = append([]string{}, q.Descriptions...)
	return params
}

// FileUploadQuestion asks workers to attach a file.
type FileUploadQuestion struct {
	QuestionFields
}

// NewFileUploadQuestion creates a file upload question. Not required by
// default.
func NewFileUploadQuestion(text string) *FileUploadQuestion {
	return &FileUploadQuestion{QuestionFields: QuestionFields{Text: text}}
}

// QuestionType returns the type tag for FileUploadQuestion.
func (q *FileUploadQuestion) QuestionType() string { return QuestionTypeFileUpload }

// ToParams flattens the question to wire format.
func (q *FileUploadQuestion) ToParams() Params {
	return q.baseParams(QuestionTypeFileUpload)
}

// RankingQuestion asks workers to order the options.
type RankingQuestion struct {
	QuestionFields
	Options          []string
	AllowRankingTies bool
}

// NewRankingQuestion creates a ranking question. Not required by default.
func NewRankingQuestion(text string, options ...string) *RankingQuestion {
	return &RankingQuestion{
		QuestionFields: QuestionFields{Text: text},
		Options:        options,
	}
}

// QuestionType returns the type tag for RankingQuestion.
func (q *RankingQuestion) QuestionType() string { return QuestionTypeRanking }

// ToParams flattens the question to wire format.
func (q *RankingQuestion) ToParams() Params {
	params := q.baseParams(QuestionTypeRanking)
	params["options"] = append([]string{}, q.Options...)
	params["allow_ranking_ties"] = q.AllowRankingTies
	return params
}

// ChatBotQuestion asks workers to converse with an externally hosted bot.
type ChatBotQuestion struct {
	QuestionFields
	// EndpointURL and EndpointHeaders configure the external callback.
	EndpointURL         string
	EndpointHeaders     Params
	ChatAdvancedOptions Params
}

// NewChatBotQuestion creates a chat bot question. Not required by default.
func NewChatBotQuestion(text, endpointURL string) *ChatBotQuestion {
	return &ChatBotQuestion{
		QuestionFields: QuestionFields{Text: text},
		EndpointURL:    endpointURL,
	}
}

// QuestionType returns the type tag for ChatBotQuestion.
func (q *ChatBotQuestion) QuestionType() string { return QuestionTypeChatBot }

// ToParams flattens the question to wire format.
func (q *ChatBotQuestion) ToParams() Params {
	params := q.baseParams(QuestionTypeChatBot)
	params["endpoint_url"] = q.EndpointURL
	params["endpoint_headers"] = copyParams(q.EndpointHeaders)
	params["chat_advanced_options"] = copyParams(q.ChatAdvancedOptions)
	return params
}

// TextAreaQuestion shows workers a block of instructional text; it
// collects no answer.
type TextAreaQuestion struct {
	QuestionFields
}

// NewTextAreaQuestion creates a text area question. Not required by
// default.
func NewTextAreaQuestion(text string) *TextAreaQuestion {
	return &TextAreaQuestion{QuestionFields: QuestionFields{Text: text}}
}

// QuestionType returns the type tag for TextAreaQuestion.
func (q *TextAreaQuestion) QuestionType() string { return QuestionTypeTextArea }

// ToParams flattens the question to wire format.
func (q *TextAreaQuestion) ToParams() Params {
	return q.baseParams(QuestionTypeTextArea)
}

// UnknownQuestion preserves a record whose type tag matches no known
// variant. It never substitutes a default variant and is rejected by
// question validation, so an unrecognized server-side type surfaces
// explicitly instead of leaving a silent hole in a project's question
// list.
type UnknownQuestion struct {
	QuestionFields
	Tag string
	Raw Params
}

// QuestionType returns the unrecognized type tag.
func (q *UnknownQuestion) QuestionType() string { return q.Tag }

// ToParams returns a copy of the preserved raw record.
func (q *UnknownQuestion) ToParams() Params {
	return copyParams(q.Raw)
}

// questionParsers dispatches a raw record to its variant constructor,
// keyed by type tag.
var questionParsers = map[string]func(Params) Question{
	QuestionTypeFreeResponse: func(rec Params) Question {
		return &FreeResponseQuestion{QuestionFields: parseQuestionFields(rec, true)}
	},
	QuestionTypeMultipleChoice: func(rec Params) Question {
		return &MultipleChoiceQuestion{
			QuestionFields: parseQuestionFields(rec, true),
			Options:        stringSlice(rec["options"]),
			Descriptions:   stringSlice(rec["descriptions"]),
		}
	},
	QuestionTypeLikert: func(rec Params) Question {
		return &LikertQuestion{
			QuestionFields: parseQuestionFields(rec, true),
			Options:        stringSlice(rec["options"]),
			Descriptions:   stringSlice(rec["descriptions"]),
		}
	},
	QuestionTypeCheckbox: func(rec Params) Question {
		return &CheckboxQuestion{
			QuestionFields: parseQuestionFields(rec, true),
			Options:        stringSlice(rec["options"]),
			Descriptions:   stringSlice(rec["descriptions"]),
		}
	},
	QuestionTypeTextTagging: func(rec Params) Question {
		return &TextTaggingQuestion{
			QuestionFields:        parseQuestionFields(rec, true),
			Options:               stringSlice(rec["options"]),
			TokenGranularity:      recordString(rec, "token_granularity"),
			AllowRelationshipTags: recordBool(rec, "allow_relationship_tags", false),
			AllowOverlappingTags:  recordBool(rec, "allow_overlapping_tags", false),
		}
	},
	QuestionTypeTreeSelection: func(rec Params) Question {
		return &TreeSelectionQuestion{
			QuestionFields: parseQuestionFields(rec, true),
			Options:        stringSlice(rec["options"]),
			Descriptions:   stringSlice(rec["descriptions"]),
		}
	},
	QuestionTypeFileUpload: func(rec Params) Question {
		return &FileUploadQuestion{QuestionFields: parseQuestionFields(rec, false)}
	},
	QuestionTypeRanking: func(rec Params) Question {
		return &RankingQuestion{
			QuestionFields:   parseQuestionFields(rec, false),
			Options:          stringSlice(rec["options"]),
			AllowRankingTies: recordBool(rec, "allow_ranking_ties", false),
		}
	},
	QuestionTypeChatBot: func(rec Params) Question {
		headers, _ := asRecord(rec["endpoint_headers"])
		advanced, _ := asRecord(rec["chat_advanced_options"])
		return &ChatBotQuestion{
			QuestionFields:      parseQuestionFields(rec, false),
			EndpointURL:         recordString(rec, "endpoint_url"),
			EndpointHeaders:     headers,
			ChatAdvancedOptions: advanced,
		}
	},
	QuestionTypeTextArea: func(rec Params) Question {
		return &TextAreaQuestion{QuestionFields: parseQuestionFields(rec, false)}
	},
}

// ParseQuestion constructs the concrete variant for a raw server record.
// Records with an unrecognized type tag come back as *UnknownQuestion.
func ParseQuestion(rec Params) Question {
	tag := recordString(rec, "type")
	parse, ok := questionParsers[tag]
	if !ok {
		return &UnknownQuestion{
			QuestionFields: parseQuestionFields(rec, false),
			Tag:            tag,
			Raw:            copyParams(rec),
		}
	}
	return parse(rec)
}

// parseQuestions deserializes a raw question list element-wise.
func parseQuestions(value any) []Question {
	records := recordSlice(value)
	if records == nil {
		return nil
	}
	questions := make([]Question, len(records))
	for i, rec := range records {
		questions[i] = ParseQuestion(rec)
	}
	return questions
}

// validateQuestions rejects anything that is not a usable concrete
// variant before a create call touches the network.
func validateQuestions(questions []Question) error {
	for i, question := range questions {
		if question == nil {
			return NewQuestionTypeError(fmt.Sprintf("Question at index %d is nil.", i))
		}
		if unknown, ok := question.(*UnknownQuestion); ok {
			return NewQuestionTypeError(fmt.Sprintf("Question at index %d has unrecognized type %q.", i, unknown.Tag))
		}
	}
	return nil
}

// serializeQuestions flattens a question list element-wise.
func serializeQuestions(questions []Question) []Params {
	out := make([]Params, len(questions))
	for i, question := range questions {
		out[i] = question.ToParams()
	}
	return out
}

// QuestionUpdateParams carries the sparse patch for an existing question.
// Nil pointer fields are not sent at all; a pointer to an empty string is
// sent, so "not supplied" stays distinguishable from "explicitly empty".
type QuestionUpdateParams struct {
	Text                *string
	HiddenByOptionID    *string
	ShownByOptionID     *string
	ChatAdvancedOptions Params
}

// UpdateQuestion partially updates an already-created question and
// returns the server's replacement.
func (c *Client) UpdateQuestion(ctx context.Context, questionID string, update QuestionUpdateParams, opts ...CallOption) (Question, error) {
	if questionID == "" {
		return nil, NewMissingIDError("id")
	}
	params := Params{}
	if update.Text != nil {
		params["text"] = *update.Text
	}
	if update.HiddenByOptionID != nil {
		params["hidden_by_option_id"] = *update.HiddenByOptionID
	}
	if update.ShownByOptionID != nil {
		params["shown_by_option_id"] = *update.ShownByOptionID
	}
	if update.ChatAdvancedOptions != nil {
		params["chat_advanced_options"] = copyParams(update.ChatAdvancedOptions)
	}
	response, err := c.put(ctx, fmt.Sprintf("items/%s", questionID), params, opts)
	if err != nil {
		return nil, err
	}
	rec, ok := asRecord(response)
	if !ok {
		return nil, NewRequestError("Expected a question record in the response.", nil)
	}
	return ParseQuestion(rec), nil
}
