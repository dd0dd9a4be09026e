package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/render"

	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/api/rest/documents"
	"github.com/ahachul/ahachul-backend/server/api/rest/middleware"
	"github.com/ahachul/ahachul-backend/server/api/rest/routes"
)

type APIBase struct {
	logger.Log
}

func NewAPIBase(logger logger.Log) *APIBase {
	return &APIBase{
		Log: logger,
	}
}

// JSON marshals 'v' to JSON, automatically escaping HTML and setting the
// Content-Type as application/json. Copied from chi/render.JSON and updated
// to log serialization errors.
func (a *APIBase) JSON(w http.ResponseWriter, r *http.Request, v interface{}) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(true)
	if err := enc.Encode(v); err != nil {
		a.Error(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if status, ok := r.Context().Value(render.StatusCtxKey).(int); ok {
		w.WriteHeader(status)
	}
	a.Tracef("JSON Response: %s", buf.String())
	w.Write(buf.Bytes())
}

// Error writes the specified error to the http response as a standard
// API error document. Errors are sanitized for public display before
// being written. Status code is automatically inferred from the error.
// Server errors are logged at Warning level and rejected requests at Info level.
func (a *APIBase) Error(w http.ResponseWriter, r *http.Request, err error) {
	doc := documents.NewErrorDocument(err)
	if doc.HTTPStatusCode >= http.StatusInternalServerError {
		a.Warnf("Error in API call: %v", err)
	} else {
		a.Infof("Rejected API call: %v", err)
	}
	a.writeErrorDocument(w, r, doc)
}

// ErrorNotLogged writes the specified error to the http response as a standard
// API error document. The error is not logged to the server log.
func (a *APIBase) ErrorNotLogged(w http.ResponseWriter, r *http.Request, err error) {
	a.writeErrorDocument(w, r, documents.NewErrorDocument(err))
}

func (a *APIBase) writeErrorDocument(w http.ResponseWriter, r *http.Request, doc *documents.ErrorDocument) {
	r = r.WithContext(context.WithValue(r.Context(), render.StatusCtxKey, doc.HTTPStatusCode))
	a.JSON(w, r, doc)
}

// Created writes a standardized created response to the http response object.
// The ID, Location and ETag headers will be set if corresponding arguments are specified,
// and data (if set) will optionally be serialized to JSON and written in the response body.
func (a *APIBase) Created(w http.ResponseWriter, r *http.Request, id string, location string, eTag models.ETag, data interface{}) {
	if eTag != "" {
		w.Header().Set("ETag", eTag.String())
	}
	if id != "" {
		w.Header().Set("Id", id)
	}
	if location != "" {
		w.Header().Set("Location", location)
	}
	r = r.WithContext(context.WithValue(r.Context(), render.StatusCtxKey, http.StatusCreated))
	if data != nil {
		a.JSON(w, r, data)
	} else {
		w.WriteHeader(http.StatusCreated)
	}
}

// GotResource writes a standardized resource response to the http response object and is intended to be
// used in response to a GET request.
func (a *APIBase) GotResource(w http.ResponseWriter, r *http.Request, resource interface{}) {
	mutable, ok := resource.(models.MutableResource)
	if ok {
		w.Header().Set("ETag", mutable.GetETag().String())
	}
	r = r.WithContext(context.WithValue(r.Context(), render.StatusCtxKey, http.StatusOK))
	a.JSON(w, r, resource)
}

// CreatedResource writes a standardized resource created response to the http response object and is
// intended to be used in response to a POST request.
func (a *APIBase) CreatedResource(w http.ResponseWriter, r *http.Request, resource documents.ResourceDocument) {
	var eTag models.ETag
	mutable, ok := resource.(models.MutableResource)
	if ok {
		eTag = mutable.GetETag()
	}
	a.Created(w, r, resource.GetID().String(), resource.GetLink(), eTag, resource)
}

// UpdatedResource writes a standardized resource updated response to the http response object and is
// intended to be used in response to a PATCH or DELETE request.
func (a *APIBase) UpdatedResource(w http.ResponseWriter, r *http.Request, resource interface{}) {
	mutable, ok := resource.(models.MutableResource)
	if ok {
		w.Header().Set("ETag", mutable.GetETag().String())
	}
	r = r.WithContext(context.WithValue(r.Context(), render.StatusCtxKey, http.StatusOK))
	a.JSON(w, r, resource)
}

// ResourceID returns the id in the named url parameter of the request.
// Returns gerror.ErrNotFound if the parameter is missing or is not a valid id, since nothing can exist at that url.
func (a *APIBase) ResourceID(r *http.Request, param string) (models.ResourceID, error) {
	id, err := routes.ResourceIDParam(r, param)
	if err != nil {
		return 0, gerror.NewErrNotFound("Not Found").Wrap(err)
	}
	if !id.Valid() {
		return 0, gerror.NewErrNotFound("Not Found")
	}
	return id, nil
}

// MustAuthenticationMeta returns information about the currently authenticated member
// from the request. If the request is not authenticated then this panics.
func (a *APIBase) MustAuthenticationMeta(r *http.Request) *middleware.AuthenticationMeta {
	meta := middleware.GetAuthenticationMeta(r)
	if meta == nil {
		panic("Request is not authenticated")
	}
	return meta
}

// MustAuthenticatedMemberID returns the id of the currently authenticated member from the request.
// If the request is not authenticated then this panics.
func (a *APIBase) MustAuthenticatedMemberID(r *http.Request) models.MemberID {
	return a.MustAuthenticationMeta(r).MemberID
}

// PageLink returns link followed by the query string of the request, for building next page urls
// that keep the filters of the current request.
func (a *APIBase) PageLink(r *http.Request, link string) string {
	if r.URL.RawQuery == "" {
		return link
	}
	return link + "?" + r.URL.RawQuery
}
