package http_test

import (
	"fmt"
	"net/http"
	"testing"

	"estatehub-backend/internal/domain"
	"estatehub-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestRegisterHandler(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		ts := newTestServer(t)
		ts.users.On("Register", mock.Anything, mock.MatchedBy(func(in service.RegisterInput) bool {
			return in.Username == "tom" && in.Role == domain.UserRoleTenant
		})).Return(&domain.User{ID: 3, Username: "tom", Role: domain.UserRoleTenant, PasswordHash: "hash"}, nil)

		rec := ts.do(http.MethodPost, "/api/v1/auth/register", "",
			`{"firstname":"Tom","username":"tom","email":"tom@example.com","mobile_number":"5551234567","password":"Secret#123","address":"2 Elm St","role":"tenant"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "User registered successfully", body["message"])
		assert.NotContains(t, rec.Body.String(), "hash")
	})

	t.Run("TakenEmail", func(t *testing.T) {
		ts := newTestServer(t)
		ts.users.On("Register", mock.Anything, mock.Anything).
			Return(nil, &service.ValidationError{Fields: map[string]string{"email": "email is already registered"}})

		rec := ts.do(http.MethodPost, "/api/v1/auth/register", "", `{"email":"tom@example.com"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "validation", decodeBody(t, rec)["error"])
	})
}

func TestProfileHandlers(t *testing.T) {
	ts := newTestServer(t)
	ts.auth.On("IsRevoked", mock.Anything, mock.Anything).Return(false, nil)
	token := ts.accessToken(t, 3, domain.UserRoleTenant)

	ts.users.On("GetProfile", mock.Anything, int32(3)).Return(&domain.User{ID: 3, Username: "tom"}, nil)
	rec := ts.do(http.MethodGet, "/api/v1/me", token, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tom", decodeBody(t, rec)["username"])

	ts.users.On("UpdateProfile", mock.Anything, int32(3), mock.MatchedBy(func(in service.UpdateProfileInput) bool {
		return in.Address != nil && *in.Address == "3 Oak St" && in.Email == nil
	})).Return(&domain.User{ID: 3, Address: "3 Oak St"}, nil)
	rec = ts.do(http.MethodPatch, "/api/v1/me", token, `{"address":"3 Oak St"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Profile updated successfully", decodeBody(t, rec)["message"])

	ts.users.On("ChangePassword", mock.Anything, int32(3), mock.Anything).
		Return(&service.ValidationError{Fields: map[string]string{"current_password": "current password is incorrect"}})
	rec = ts.do(http.MethodPost, "/api/v1/me/password", token, `{"current_password":"x","new_password":"New#Pass2","confirm_password":"New#Pass2"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	ts.users.AssertExpectations(t)
}

func TestPropertyHandlers(t *testing.T) {
	owner := domain.Caller{UserID: 1, Role: domain.UserRoleOwner}

	t.Run("ListForRole", func(t *testing.T) {
		ts := newTestServer(t)
		ts.auth.On("IsRevoked", mock.Anything, mock.Anything).Return(false, nil)
		ts.properties.On("ListProperties", mock.Anything, domain.Caller{UserID: 3, Role: domain.UserRoleTenant}).
			Return([]domain.Property{}, nil)

		rec := ts.do(http.MethodGet, "/api/v1/properties", ts.accessToken(t, 3, domain.UserRoleTenant), "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("CreateForbiddenForTenant", func(t *testing.T) {
		ts := newTestServer(t)
		ts.auth.On("IsRevoked", mock.Anything, mock.Anything).Return(false, nil)
		ts.properties.On("CreateProperty", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: only owners can list properties", service.ErrForbidden))

		rec := ts.do(http.MethodPost, "/api/v1/properties", ts.accessToken(t, 3, domain.UserRoleTenant), `{"name":"Lake House"}`)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("UpdateDuplicateAddress", func(t *testing.T) {
		ts := newTestServer(t)
		ts.auth.On("IsRevoked", mock.Anything, mock.Anything).Return(false, nil)
		ts.properties.On("UpdateProperty", mock.Anything, owner, int32(7), mock.MatchedBy(func(in service.PropertyInput) bool {
			return len(in.Amenities) == 2
		})).Return(nil, fmt.Errorf("%w: this address is already associated with another property", service.ErrConflict))

		rec := ts.do(http.MethodPut, "/api/v1/properties/7", ts.accessToken(t, 1, domain.UserRoleOwner), `{"amenities":["gym","Lift"]}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("Delete", func(t *testing.T) {
		ts := newTestServer(t)
		ts.auth.On("IsRevoked", mock.Anything, mock.Anything).Return(false, nil)
		ts.properties.On("DeleteProperty", mock.Anything, owner, int32(7)).Return(nil)
		ts.properties.On("DeleteProperty", mock.Anything, owner, int32(8)).Return(fmt.Errorf("property %w or you are not authorized", service.ErrNotFound))

		rec := ts.do(http.MethodDelete, "/api/v1/properties/7", ts.accessToken(t, 1, domain.UserRoleOwner), "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Property deleted successfully", decodeBody(t, rec)["message"])

		rec = ts.do(http.MethodDelete, "/api/v1/properties/8", ts.accessToken(t, 1, domain.UserRoleOwner), "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestShortlistHandlers(t *testing.T) {
	ts := newTestServer(t)
	ts.auth.On("IsRevoked", mock.Anything, mock.Anything).Return(false, nil)
	token := ts.accessToken(t, 4, domain.UserRoleBuyer)

	ts.shortlists.On("AddToShortlist", mock.Anything, int32(4), int32(8)).Return(true, nil).Once()
	ts.shortlists.On("AddToShortlist", mock.Anything, int32(4), int32(8)).Return(false, nil).Once()
	ts.shortlists.On("RemoveFromShortlist", mock.Anything, int32(4), int32(8)).Return(nil)
	ts.shortlists.On("ListShortlist", mock.Anything, int32(4)).
		Return([]domain.ShortlistedProperty{{Property: &domain.Property{ID: 8}, Owner: domain.UserContact{ID: 1}}}, nil)

	rec := ts.do(http.MethodPost, "/api/v1/shortlist/8", token, "")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Property shortlisted", decodeBody(t, rec)["message"])

	rec = ts.do(http.MethodPost, "/api/v1/shortlist/8", token, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Already shortlisted", decodeBody(t, rec)["message"])

	rec = ts.do(http.MethodGet, "/api/v1/shortlist", token, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(http.MethodDelete, "/api/v1/shortlist/8", token, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	ts.shortlists.AssertExpectations(t)
}
