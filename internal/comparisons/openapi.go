package comparisons

import "github.com/JaimeStill/formatdiff/pkg/openapi"

var onlyDiffs = openapi.QueryParam("only_diffs", "boolean", "List changed positions only", false)

func values(t string) *openapi.Schema {
	return &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"left":  {Type: t},
			"right": {Type: t},
		},
	}
}

var schemas = map[string]*openapi.Schema{
	"Paragraph": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"index":     {Type: "integer"},
			"text":      {Type: "string"},
			"style_id":  {Type: "string"},
			"jc":        {Type: "string", Description: "Justification"},
			"tab_count": {Type: "integer"},
			"br_count":  {Type: "integer"},
			"indent":    {Type: "object", AdditionalProperties: &openapi.Schema{Type: "string"}},
			"spacing":   {Type: "object", AdditionalProperties: &openapi.Schema{Type: "string"}},
		},
	},
	"Document": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"filename":         {Type: "string"},
			"paragraphs":       {Type: "array", Items: openapi.SchemaRef("Paragraph")},
			"total_paragraphs": {Type: "integer"},
		},
	},
	"Annotation": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"text_diff":    {Type: "boolean"},
			"style_diff":   {Type: "boolean"},
			"jc_diff":      {Type: "boolean"},
			"tab_diff":     {Type: "boolean"},
			"br_diff":      {Type: "boolean"},
			"indent_diff":  {Type: "boolean"},
			"spacing_diff": {Type: "boolean"},
			"text":         values("string"),
			"style_id":     values("string"),
			"jc":           values("string"),
			"tab_count":    values("integer"),
			"br_count":     values("integer"),
			"indent":       values("object"),
			"spacing":      values("object"),
		},
	},
	"Entry": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"index":      {Type: "integer"},
			"left":       openapi.SchemaRef("Paragraph"),
			"right":      openapi.SchemaRef("Paragraph"),
			"status":     {Type: "string", Enum: []any{"unchanged", "modified", "added", "removed"}},
			"annotation": openapi.SchemaRef("Annotation"),
		},
	},
	"Report": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"template": openapi.SchemaRef("Template"),
			"paragraphs": {
				Type: "object",
				Properties: map[string]*openapi.Schema{
					"left":    {Type: "object"},
					"right":   {Type: "object"},
					"entries": {Type: "array", Items: openapi.SchemaRef("Entry")},
					"statistics": {
						Type: "object",
						Properties: map[string]*openapi.Schema{
							"added":     {Type: "integer"},
							"removed":   {Type: "integer"},
							"modified":  {Type: "integer"},
							"unchanged": {Type: "integer"},
						},
					},
				},
			},
			"package": {
				Type: "object",
				Properties: map[string]*openapi.Schema{
					"overall_similarity": {Type: "number"},
					"file_comparisons":   {Type: "object"},
					"content_consistent": {Type: "boolean"},
					"similarity_level":   {Type: "string", Enum: []any{"high", "medium", "low"}},
				},
			},
		},
	},
}

var reportResponses = map[int]*openapi.Response{
	200: openapi.ResponseJSON("Comparison report", "Report"),
	400: openapi.ResponseRef("BadRequest"),
	413: openapi.ResponseRef("PayloadTooLarge"),
	422: openapi.ResponseRef("UnprocessableEntity"),
}

var docs = struct {
	Compare, CompareTemplate, Parse *openapi.Operation
}{
	Compare: &openapi.Operation{
		Summary:     "Compare two documents",
		Description: "file1 is the left document and file2 the right.",
		Parameters:  []*openapi.Parameter{onlyDiffs},
		RequestBody: openapi.RequestBodyMultipart([]string{"file1", "file2"}, nil),
		Responses:   reportResponses,
	},
	CompareTemplate: &openapi.Operation{
		Summary:     "Compare a document against a template",
		Description: "Uses the default template when template_id is omitted.",
		Parameters:  []*openapi.Parameter{onlyDiffs},
		RequestBody: openapi.RequestBodyMultipart([]string{"file"}, map[string]*openapi.Schema{
			"template_id": {Type: "string", Format: "uuid"},
		}),
		Responses: map[int]*openapi.Response{
			200: reportResponses[200],
			400: reportResponses[400],
			404: openapi.ResponseRef("NotFound"),
			413: reportResponses[413],
			422: reportResponses[422],
		},
	},
	Parse: &openapi.Operation{
		Summary:     "Extract paragraph records",
		RequestBody: openapi.RequestBodyMultipart([]string{"file"}, nil),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Paragraph records", "Document"),
			400: openapi.ResponseRef("BadRequest"),
			413: openapi.ResponseRef("PayloadTooLarge"),
			422: openapi.ResponseRef("UnprocessableEntity"),
		},
	},
}
