package templates

import (
	"github.com/JaimeStill/formatdiff/pkg/docx"
	"github.com/JaimeStill/formatdiff/pkg/openapi"
)

var idParam = openapi.PathParam("id", "Template ID")

var listParams = []*openapi.Parameter{
	openapi.QueryParam("page", "integer", "Page number (1-indexed)", false),
	openapi.QueryParam("page_size", "integer", "Results per page", false),
	openapi.QueryParam("search", "string", "Matches name or filename", false),
	openapi.QueryParam("sort", "string", "Comma-separated sort fields, - prefix for descending", false),
	openapi.QueryParam("name", "string", "Case-insensitive name contains", false),
	openapi.QueryParam("filename", "string", "Case-insensitive filename contains", false),
	openapi.QueryParam("checksum", "string", "Exact BLAKE3 checksum", false),
	openapi.QueryParam("is_default", "boolean", "Default flag", false),
}

var schemas = map[string]*openapi.Schema{
	"Template": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":          {Type: "string", Format: "uuid"},
			"name":        {Type: "string"},
			"filename":    {Type: "string"},
			"size_bytes":  {Type: "integer"},
			"checksum":    {Type: "string", Description: "Hex BLAKE3 digest of the file"},
			"storage_key": {Type: "string"},
			"is_default":  {Type: "boolean"},
			"created_at":  {Type: "string", Format: "date-time"},
			"updated_at":  {Type: "string", Format: "date-time"},
		},
	},
	"TemplatePage": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"data":        {Type: "array", Items: openapi.SchemaRef("Template")},
			"total":       {Type: "integer"},
			"page":        {Type: "integer"},
			"page_size":   {Type: "integer"},
			"total_pages": {Type: "integer"},
		},
	},
	"TemplateSearch": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"page":       {Type: "integer"},
			"page_size":  {Type: "integer"},
			"search":     {Type: "string"},
			"sort":       {Type: "string"},
			"name":       {Type: "string"},
			"filename":   {Type: "string"},
			"checksum":   {Type: "string"},
			"is_default": {Type: "boolean"},
		},
	},
	"RenameCommand": {
		Type:       "object",
		Required:   []string{"name"},
		Properties: map[string]*openapi.Schema{"name": {Type: "string"}},
	},
}

var docs = struct {
	List, FindDefault, Find, Download, Upload, Search, Rename, SetDefault, Delete *openapi.Operation
}{
	List: &openapi.Operation{
		Summary:    "List templates",
		Parameters: listParams,
		Responses:  map[int]*openapi.Response{200: openapi.ResponseJSON("Page of templates", "TemplatePage")},
	},
	FindDefault: &openapi.Operation{
		Summary:     "Find the default template",
		Description: "Falls back to the most recent upload when none is flagged.",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Default template", "Template"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Find: &openapi.Operation{
		Summary:    "Find a template",
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Template", "Template"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Download: &openapi.Operation{
		Summary:    "Download a template file",
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseBinary("Template file", docx.ContentType),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Upload: &openapi.Operation{
		Summary: "Upload a template",
		RequestBody: openapi.RequestBodyMultipart([]string{"file"}, map[string]*openapi.Schema{
			"name":       {Type: "string", Description: "Defaults to the filename without extension"},
			"is_default": {Type: "boolean"},
		}),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Registered template", "Template"),
			400: openapi.ResponseRef("BadRequest"),
			409: openapi.ResponseRef("Conflict"),
			413: openapi.ResponseRef("PayloadTooLarge"),
		},
	},
	Search: &openapi.Operation{
		Summary:     "Search templates",
		RequestBody: openapi.RequestBodyJSON("TemplateSearch", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Page of templates", "TemplatePage"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Rename: &openapi.Operation{
		Summary:     "Rename a template",
		Parameters:  []*openapi.Parameter{idParam},
		RequestBody: openapi.RequestBodyJSON("RenameCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Renamed template", "Template"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	SetDefault: &openapi.Operation{
		Summary:    "Make a template the default",
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Default template", "Template"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Delete: &openapi.Operation{
		Summary:    "Delete a template",
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			204: {Description: "Deleted"},
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}
