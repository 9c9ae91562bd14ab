package handler

const (
	jsonKeyError   = "error"
	jsonKeyMessage = "message"

	msgContentTypeJSONRequired = "Content-Type must be application/json"
	msgInvalidRequestBody      = "invalid request body"
	msgInvalidID               = "invalid id"
	msgInvalidPage             = "page must be a positive integer"
	msgNoFieldsToUpdate        = "no fields to update"
	msgPasswordProcessFail     = "failed to process password"
	msgSessionCreateFail       = "failed to create session"
	msgLoggedOut               = "logged out"
	msgGameDeleted             = "game deleted"
	msgConsoleDeleted          = "console deleted"
	msgUserDeleted             = "user deleted"
	msgRoleUpdated             = "role updated"
	msgCannotChangeOwnRole     = "cannot change your own role"
	msgCannotDeleteSelf        = "cannot delete your own account"
)
