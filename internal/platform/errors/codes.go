// Package errors provides structured error handling for the rules engine.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Catalog reference errors
	CodeUnknownUnit         Code = "CATALOG_UNKNOWN_UNIT"
	CodeUnknownBuilding     Code = "CATALOG_UNKNOWN_BUILDING"
	CodeUnknownTile         Code = "CATALOG_UNKNOWN_TILE"
	CodeUnknownWeapon       Code = "CATALOG_UNKNOWN_WEAPON"
	CodeUnknownMovementType Code = "CATALOG_UNKNOWN_MOVEMENT_TYPE"
	CodeDuplicateEntry      Code = "CATALOG_DUPLICATE_ENTRY"
	CodeInvalidEntry        Code = "CATALOG_INVALID_ENTRY"

	// Entity errors
	CodeNeutralHQ             Code = "BUILDING_NEUTRAL_HQ"
	CodeInvalidPlainUnit      Code = "UNIT_INVALID_PLAIN"
	CodeInvalidPlainBuilding  Code = "BUILDING_INVALID_PLAIN"
	CodeSkillNotUnlocked      Code = "PLAYER_SKILL_NOT_UNLOCKED"
	CodeInsufficientCharge    Code = "PLAYER_INSUFFICIENT_CHARGE"
	CodeInvalidPlayerID       Code = "PLAYER_INVALID_ID"
	CodeDuplicatePosition     Code = "MAP_DUPLICATE_POSITION"
	CodePositionOutOfBounds   Code = "MAP_POSITION_OUT_OF_BOUNDS"
	CodeUnknownPlayer         Code = "MAP_UNKNOWN_PLAYER"
	CodeScenarioInvalidStep   Code = "SCENARIO_INVALID_STEP"
	CodeScenarioAssertion     Code = "SCENARIO_ASSERTION_FAILED"
	CodeNotFound              Code = "NOT_FOUND"
	CodeUnreachable           Code = "UNREACHABLE"
)

// All lists every declared code in declaration order.
func All() []Code {
	return []Code{
		CodeUnknown,
		CodeUnknownUnit,
		CodeUnknownBuilding,
		CodeUnknownTile,
		CodeUnknownWeapon,
		CodeUnknownMovementType,
		CodeDuplicateEntry,
		CodeInvalidEntry,
		CodeNeutralHQ,
		CodeInvalidPlainUnit,
		CodeInvalidPlainBuilding,
		CodeSkillNotUnlocked,
		CodeInsufficientCharge,
		CodeInvalidPlayerID,
		CodeDuplicatePosition,
		CodePositionOutOfBounds,
		CodeUnknownPlayer,
		CodeScenarioInvalidStep,
		CodeScenarioAssertion,
		CodeNotFound,
		CodeUnreachable,
	}
}

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - corrupted references and malformed payloads
	case CodeUnknownUnit,
		CodeUnknownBuilding,
		CodeUnknownTile,
		CodeUnknownWeapon,
		CodeUnknownMovementType,
		CodeDuplicateEntry,
		CodeInvalidEntry,
		CodeNeutralHQ,
		CodeInvalidPlainUnit,
		CodeInvalidPlainBuilding,
		CodeInvalidPlayerID,
		CodeDuplicatePosition,
		CodePositionOutOfBounds,
		CodeScenarioInvalidStep:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow operation
	case CodeSkillNotUnlocked,
		CodeInsufficientCharge,
		CodeScenarioAssertion:
		return codes.FailedPrecondition

	// NotFound - resource doesn't exist
	case CodeNotFound,
		CodeUnknownPlayer:
		return codes.NotFound

	default:
		return codes.Internal
	}
}
