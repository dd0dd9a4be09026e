package gerror

import (
	"errors"
	"net/http"
)

const (
	ErrCodeInternal                      Code = "Internal"
	ErrCodeValidationFailed              Code = "ValidationFailed"
	ErrCodeInvalidArgument               Code = "InvalidArgument"
	ErrCodeInvalidQueryParameter         Code = "InvalidQueryParameter"
	ErrCodeNotFound                      Code = "NotFound"
	ErrCodeUnauthorized                  Code = "Unauthorized"
	ErrCodeForbidden                     Code = "Forbidden"
	ErrCodeAlreadyExists                 Code = "AlreadyExists"
	ErrCodeOptimisticLockFailed          Code = "OptimisticLockFailed"
	ErrCodePostNotFound                  Code = "PostNotFound"
	ErrCodeInvalidAccessToken            Code = "InvalidAccessToken"
	ErrCodeExpiredAccessToken            Code = "ExpiredAccessToken"
	ErrCodeInvalidOAuthAuthorizationCode Code = "InvalidOAuthAuthorizationCode"
	ErrCodeInvalidOAuthAccessToken       Code = "InvalidOAuthAccessToken"
	ErrCodeInvalidReportRequest          Code = "InvalidReportRequest"
	ErrCodeDuplicateReportRequest        Code = "DuplicateReportRequest"
	ErrCodeInvalidReportAction           Code = "InvalidReportAction"
	ErrCodeInvalidConditionToBlockMember Code = "InvalidConditionToBlockMember"
	ErrCodeInvalidSubwayLine             Code = "InvalidSubwayLine"
	ErrCodeUnsupportedFileType           Code = "UnsupportedFileType"
	ErrCodeMemberSuspended               Code = "MemberSuspended"
	ErrCodeTimeout                       Code = "Timeout"
	ErrHttpOperationFailed               Code = "HttpOperationFailed"
)

// ToError locates an Error in the provided error chain and returns it if it
// matches the provided code. Otherwise, returns nil.
func ToError(err error, code Code) *Error {
	if err == nil {
		return nil
	}
	var gErr Error
	if errors.As(err, &gErr) && gErr.Code() == code {
		return &gErr
	}
	return nil
}

func NewErrInternal() Error {
	return NewError(
		"An internal server error occurred",
		AudienceExternal,
		ErrCodeInternal,
		http.StatusInternalServerError,
		nil,
	)
}

func ToInternal(err error) *Error {
	return ToError(err, ErrCodeInternal)
}

func IsInternal(err error) bool {
	return ToInternal(err) != nil
}

func NewErrValidationFailed(message string) Error {
	return NewError(message, AudienceExternal, ErrCodeValidationFailed, http.StatusBadRequest, nil)
}

func ToValidationFailed(err error) *Error {
	return ToError(err, ErrCodeValidationFailed)
}

func IsValidationFailed(err error) bool {
	return ToValidationFailed(err) != nil
}

func NewErrInvalidArgument(message string) Error {
	return NewError(message, AudienceExternal, ErrCodeInvalidArgument, http.StatusBadRequest, nil)
}

func ToInvalidArgument(err error) *Error {
	return ToError(err, ErrCodeInvalidArgument)
}

func IsInvalidArgument(err error) bool {
	return ToInvalidArgument(err) != nil
}

func NewErrInvalidQueryParameter(message string) Error {
	return NewError(message, AudienceExternal, ErrCodeInvalidQueryParameter, http.StatusBadRequest, nil)
}

func ToInvalidQueryParameter(err error) *Error {
	return ToError(err, ErrCodeInvalidQueryParameter)
}

func IsInvalidQueryParameter(err error) bool {
	return ToInvalidQueryParameter(err) != nil
}

func NewErrNotFound(message string) Error {
	return NewError(message, AudienceExternal, ErrCodeNotFound, http.StatusNotFound, nil)
}

func ToNotFound(err error) *Error {
	return ToError(err, ErrCodeNotFound)
}

func IsNotFound(err error) bool {
	return ToNotFound(err) != nil
}

func NewErrUnauthorized(message string) Error {
	return NewError(message, AudienceExternal, ErrCodeUnauthorized, http.StatusUnauthorized, nil)
}

func ToUnauthorized(err error) *Error {
	return ToError(err, ErrCodeUnauthorized)
}

func IsUnauthorized(err error) bool {
	return ToUnauthorized(err) != nil
}

func NewErrForbidden(message string) Error {
	return NewError(message, AudienceExternal, ErrCodeForbidden, http.StatusForbidden, nil)
}

func ToForbidden(err error) *Error {
	return ToError(err, ErrCodeForbidden)
}

func IsForbidden(err error) bool {
	return ToForbidden(err) != nil
}

func NewErrAlreadyExists(message string) Error {
	return NewError(message, AudienceExternal, ErrCodeAlreadyExists, http.StatusBadRequest, nil)
}

func ToAlreadyExists(err error) *Error {
	return ToError(err, ErrCodeAlreadyExists)
}

func IsAlreadyExists(err error) bool {
	return ToAlreadyExists(err) != nil
}

func NewErrOptimisticLockFailed(message string) Error {
	return NewError(message, AudienceExternal, ErrCodeOptimisticLockFailed, http.StatusPreconditionFailed, nil)
}

func ToOptimisticLockFailed(err error) *Error {
	return ToError(err, ErrCodeOptimisticLockFailed)
}

func IsOptimisticLockFailed(err error) bool {
	return ToOptimisticLockFailed(err) != nil
}

func NewErrPostNotFound() Error {
	return NewError("Post not found", AudienceExternal, ErrCodePostNotFound, http.StatusNotFound, nil)
}

func ToPostNotFound(err error) *Error {
	return ToError(err, ErrCodePostNotFound)
}

func IsPostNotFound(err error) bool {
	return ToPostNotFound(err) != nil
}

func NewErrInvalidAccessToken() Error {
	return NewError("Invalid access token", AudienceExternal, ErrCodeInvalidAccessToken, http.StatusUnauthorized, nil)
}

func ToInvalidAccessToken(err error) *Error {
	return ToError(err, ErrCodeInvalidAccessToken)
}

func IsInvalidAccessToken(err error) bool {
	return ToInvalidAccessToken(err) != nil
}

func NewErrExpiredAccessToken() Error {
	return NewError("Access token has expired", AudienceExternal, ErrCodeExpiredAccessToken, http.StatusUnauthorized, nil)
}

func ToExpiredAccessToken(err error) *Error {
	return ToError(err, ErrCodeExpiredAccessToken)
}

func IsExpiredAccessToken(err error) bool {
	return ToExpiredAccessToken(err) != nil
}

func NewErrInvalidOAuthAuthorizationCode() Error {
	return NewError(
		"Invalid OAuth authorization code",
		AudienceExternal,
		ErrCodeInvalidOAuthAuthorizationCode,
		http.StatusUnauthorized,
		nil,
	)
}

func IsInvalidOAuthAuthorizationCode(err error) bool {
	return ToError(err, ErrCodeInvalidOAuthAuthorizationCode) != nil
}

func NewErrInvalidOAuthAccessToken() Error {
	return NewError(
		"Invalid OAuth access token",
		AudienceExternal,
		ErrCodeInvalidOAuthAccessToken,
		http.StatusUnauthorized,
		nil,
	)
}

func IsInvalidOAuthAccessToken(err error) bool {
	return ToError(err, ErrCodeInvalidOAuthAccessToken) != nil
}

func NewErrInvalidReportRequest() Error {
	return NewError("Members cannot report their own posts", AudienceExternal, ErrCodeInvalidReportRequest, http.StatusBadRequest, nil)
}

func IsInvalidReportRequest(err error) bool {
	return ToError(err, ErrCodeInvalidReportRequest) != nil
}

func NewErrDuplicateReportRequest() Error {
	return NewError("Post has already been reported by this member", AudienceExternal, ErrCodeDuplicateReportRequest, http.StatusBadRequest, nil)
}

func IsDuplicateReportRequest(err error) bool {
	return ToError(err, ErrCodeDuplicateReportRequest) != nil
}

func NewErrInvalidReportAction() Error {
	return NewError("Member is already suspended", AudienceExternal, ErrCodeInvalidReportAction, http.StatusBadRequest, nil)
}

func IsInvalidReportAction(err error) bool {
	return ToError(err, ErrCodeInvalidReportAction) != nil
}

func NewErrInvalidConditionToBlockMember() Error {
	return NewError(
		"Member has not been reported enough times to be blocked",
		AudienceExternal,
		ErrCodeInvalidConditionToBlockMember,
		http.StatusBadRequest,
		nil,
	)
}

func IsInvalidConditionToBlockMember(err error) bool {
	return ToError(err, ErrCodeInvalidConditionToBlockMember) != nil
}

func NewErrInvalidSubwayLine() Error {
	return NewError("Subway line is not supported", AudienceExternal, ErrCodeInvalidSubwayLine, http.StatusBadRequest, nil)
}

func IsInvalidSubwayLine(err error) bool {
	return ToError(err, ErrCodeInvalidSubwayLine) != nil
}

func NewErrUnsupportedFileType(contentType string) Error {
	return NewError("Unsupported file type", AudienceExternal, ErrCodeUnsupportedFileType, http.StatusBadRequest, nil).
		EDetail("content_type", contentType)
}

func IsUnsupportedFileType(err error) bool {
	return ToError(err, ErrCodeUnsupportedFileType) != nil
}

func NewErrMemberSuspended() Error {
	return NewError(
		"Member is suspended; Please contact an administrator",
		AudienceExternal,
		ErrCodeMemberSuspended,
		http.StatusForbidden,
		nil,
	)
}

func IsMemberSuspended(err error) bool {
	return ToError(err, ErrCodeMemberSuspended) != nil
}

func NewErrTimeout(description string) Error {
	return NewError("Timeout: "+description, AudienceInternal, ErrCodeTimeout, http.StatusInternalServerError, nil)
}

func IsTimeout(err error) bool {
	return ToError(err, ErrCodeTimeout) != nil
}

func NewErrHttpOperationFailed(message string, statusCode int) Error {
	return NewError(message, AudienceInternal, ErrHttpOperationFailed, http.StatusBadGateway, nil).
		IDetail("status_code", statusCode)
}

func IsHttpOperationFailed(err error) bool {
	return ToError(err, ErrHttpOperationFailed) != nil
}
