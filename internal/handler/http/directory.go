package http

import (
	"net/http"

	"github.com/cmlabs-hris/attendance-reconciliation/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/service/directory"
)

type DirectoryHandler interface {
	ListEmployeeProfiles(w http.ResponseWriter, r *http.Request)
	ListShifts(w http.ResponseWriter, r *http.Request)
	ListLocations(w http.ResponseWriter, r *http.Request)
}

type directoryHandlerImpl struct {
	directoryService directory.DirectoryService
}

func NewDirectoryHandler(directoryService directory.DirectoryService) DirectoryHandler {
	return &directoryHandlerImpl{directoryService: directoryService}
}

// ListEmployeeProfiles implements DirectoryHandler.
func (h *directoryHandlerImpl) ListEmployeeProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.directoryService.ListEmployeeProfiles(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, profiles)
}

// ListShifts implements DirectoryHandler.
func (h *directoryHandlerImpl) ListShifts(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.directoryService.ListShifts(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, shifts)
}

// ListLocations implements DirectoryHandler.
func (h *directoryHandlerImpl) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.directoryService.ListLocations(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, locations)
}
