package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/sushihentaime/blogapi/internal/blogservice"
	"github.com/sushihentaime/blogapi/internal/common"
	"github.com/sushihentaime/blogapi/internal/userservice"
)

const sessionCookieName = "token"

func (app *application) signupHandler(w http.ResponseWriter, r *http.Request) {
	var input userservice.CreateUserRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user, err := app.userService.CreateUser(r.Context(), &input)
	if err != nil {
		var validationErr common.ValidationError
		switch {
		case errors.As(err, &validationErr):
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
			return
		case errors.Is(err, userservice.ErrEventNotPublished) && user != nil:
			// the account exists, only the welcome email is lost
			app.logError(r, err)
		default:
			app.serverErrorResponse(w, r, err)
			return
		}
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"user": user}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type loginUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	var input loginUserRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	session, err := app.userService.LoginUser(r.Context(), input.Email, input.Password)
	if err != nil {
		var validationErr common.ValidationError
		switch {
		case errors.As(err, &validationErr):
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		case errors.Is(err, userservice.ErrNotFound):
			app.noRecordResponse(w, r)
		case errors.Is(err, userservice.ErrAuthenticationFailure):
			app.invalidCredentialsErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	http.SetCookie(w, app.sessionCookie(session.Token, session.Expiry))

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "login successful", "user": session.User}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) logoutHandler(w http.ResponseWriter, r *http.Request) {
	cookie := app.sessionCookie("", time.Unix(0, 0))
	cookie.MaxAge = -1
	http.SetCookie(w, cookie)

	err := app.writeJSON(w, http.StatusOK, envelope{"message": "logout successful"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) meHandler(w http.ResponseWriter, r *http.Request) {
	claims := app.contextGetClaims(r)

	user := userservice.UserSummary{
		Email:    claims.Email,
		UserID:   claims.UserID,
		Username: claims.Username,
	}

	err := app.writeJSON(w, http.StatusOK, envelope{"user": user}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// sessionCookie is Secure outside development, which also requires SameSite=None for the cross-site frontend.
func (app *application) sessionCookie(value string, expires time.Time) *http.Cookie {
	cookie := &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	if !app.config.isDevelopment() {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	}

	return cookie
}

func (app *application) createBlogHandler(w http.ResponseWriter, r *http.Request) {
	var input blogservice.CreateBlogRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	// an authenticated caller owns the post unless the body names an owner
	if claims := app.contextGetClaims(r); claims != nil {
		if input.UserID == "" {
			input.UserID = claims.UserID
		}
		if input.Email == "" {
			input.Email = claims.Email
		}
	}

	blog, err := app.blogService.CreateBlog(r.Context(), &input)
	if err != nil {
		var validationErr common.ValidationError
		switch {
		case errors.As(err, &validationErr):
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, blog, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) listBlogsHandler(w http.ResponseWriter, r *http.Request) {
	blogs, err := app.blogService.GetBlogs(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, blogs, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) showBlogHandler(w http.ResponseWriter, r *http.Request) {
	blog, err := app.blogService.GetBlogByID(r.Context(), app.readIDParam(r))
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.blogNotFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, blog, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) listUserBlogsHandler(w http.ResponseWriter, r *http.Request) {
	blogs, err := app.blogService.GetBlogsByOwnerEmail(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		var validationErr common.ValidationError
		switch {
		case errors.As(err, &validationErr):
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, blogs, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) searchBlogsHandler(w http.ResponseWriter, r *http.Request) {
	blogs, err := app.blogService.SearchBlogs(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, blogs, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) updateBlogHandler(w http.ResponseWriter, r *http.Request) {
	var input blogservice.UpdateBlogRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	blog, err := app.blogService.UpdateBlog(r.Context(), app.readIDParam(r), &input)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.blogNotFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, blog, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deleteBlogHandler(w http.ResponseWriter, r *http.Request) {
	err := app.blogService.DeleteBlog(r.Context(), app.readIDParam(r))
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.blogNotFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "blog deleted successfully"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
