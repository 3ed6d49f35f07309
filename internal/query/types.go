// Package query turns a raw user question into a classified, entity-tagged
// context that drives retrieval strategy selection.
package query

import (
	"errors"

	"hrassist/internal/format"
)

// ErrInvalidQuery is returned for blank or whitespace-only input.
var ErrInvalidQuery = errors.New("invalid query")

// Type classifies a query for strategy selection downstream.
type Type string

const (
	TypePersonLookup     Type = "person_lookup"
	TypePolicyInquiry    Type = "policy_inquiry"
	TypeProcedureInquiry Type = "procedure_inquiry"
	TypeGeneralInfo      Type = "general_info"
	TypeTravelRelated    Type = "travel_related"
	TypeBenefitsRelated  Type = "benefits_related"
	TypeGreeting         Type = "greeting"
	TypeUnclear          Type = "unclear"
)

// Intent labels what the user wants done with the answer.
type Intent string

const (
	IntentInformationSeeking Intent = "information_seeking"
	IntentPermissionInquiry  Intent = "permission_inquiry"
	IntentAssistanceRequest  Intent = "assistance_request"
	IntentActionRequired     Intent = "action_required"
	IntentContactSeeking     Intent = "contact_seeking"
	IntentGeneralInquiry     Intent = "general_inquiry"
)

// Entity categories populated by extraction.
const (
	EntityPeople        = "people"
	EntityLocations     = "locations"
	EntityOrganizations = "organizations"
	EntityAmounts       = "amounts"
	EntityDates         = "dates"
)

// Turn is one completed question and answer exchange.
type Turn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Context carries the processed query and everything later stages need to
// act on it. It lives for a single request.
type Context struct {
	UserID           string
	SessionID        string
	Platform         format.Platform
	OriginalQuery    string
	ProcessedQuery   string
	Type             Type
	Confidence       float64
	Entities         map[string][]string
	Intent           Intent
	PriorityKeywords []string
	History          []Turn
}
