package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/rentredi/internal/domain/user"
	"github.com/khoahotran/rentredi/internal/frontend/usercache"
	"github.com/khoahotran/rentredi/internal/frontend/view"
	"github.com/khoahotran/rentredi/pkg/logger"
)

const toastCookie = "rentredi_toast"

type Handler struct {
	cache  *usercache.Cache
	logger logger.Logger
	now    func() time.Time
}

func NewHandler(cache *usercache.Cache, log logger.Logger) *Handler {
	return &Handler{cache: cache, logger: log, now: time.Now}
}

type row struct {
	ID        string
	Name      string
	ZipCode   string
	Latitude  string
	Longitude string
	MapLink   string
	Timezone  string
	LocalTime string
	EditURL   string
	DeleteURL string
}

type deleteDialog struct {
	Title         string
	Description   string
	ConfirmAction string
	CancelURL     string
	Query         string
}

type pageData struct {
	Query               string
	Loading             bool
	LoadError           string
	Rows                []row
	EmptyMessage        string
	Editing             bool
	FormAction          string
	FormName            string
	FormZipCode         string
	CancelURL           string
	Deleting            *deleteDialog
	Toast               *view.Toast
	ToastDurationMillis int
}

// pageURL builds "/" with the search query and one optional extra parameter.
func pageURL(query, key, value string) string {
	v := url.Values{}
	if query != "" {
		v.Set("q", query)
	}
	if key != "" {
		v.Set(key, value)
	}
	if len(v) == 0 {
		return "/"
	}
	return "/?" + v.Encode()
}

func findUser(users []user.User, id string) (user.User, bool) {
	for _, u := range users {
		if u.ID == id {
			return u, true
		}
	}
	return user.User{}, false
}

// Index renders the users page. ?q= filters, ?edit=<id> opens the form in edit mode,
// ?delete=<id> opens the confirmation dialog.
func (h *Handler) Index(c *gin.Context) {
	query := c.Query("q")
	users := h.cache.Users()
	now := h.now()

	data := pageData{
		Query:               query,
		Loading:             h.cache.IsLoading(),
		EmptyMessage:        view.EmptyTableMessage,
		FormAction:          "/ui/users",
		CancelURL:           pageURL(query, "", ""),
		Toast:               h.popToast(c),
		ToastDurationMillis: view.ToastDurationMillis,
	}
	if err := h.cache.Error(); err != nil {
		data.LoadError = view.LoadErrorMessage(err)
	}

	for _, u := range view.Visible(users, query) {
		data.Rows = append(data.Rows, row{
			ID:        u.ID,
			Name:      u.Name,
			ZipCode:   u.ZipCode,
			Latitude:  view.Coordinate(u.Latitude),
			Longitude: view.Coordinate(u.Longitude),
			MapLink:   view.MapLink(u.Latitude, u.Longitude),
			Timezone:  view.Timezone(u.Timezone),
			LocalTime: view.LocalTime(u.Timezone, now),
			EditURL:   pageURL(query, "edit", u.ID),
			DeleteURL: pageURL(query, "delete", u.ID),
		})
	}

	if u, ok := findUser(users, c.Query("edit")); ok {
		data.Editing = true
		data.FormAction = "/ui/users/" + url.PathEscape(u.ID)
		data.FormName = u.Name
		data.FormZipCode = u.ZipCode
	}

	if u, ok := findUser(users, c.Query("delete")); ok {
		data.Deleting = &deleteDialog{
			Title:         view.DeleteDialogTitle,
			Description:   view.DeleteDescription(u.Name),
			ConfirmAction: "/ui/users/" + url.PathEscape(u.ID) + "/delete",
			CancelURL:     pageURL(query, "", ""),
			Query:         query,
		}
	}

	c.HTML(http.StatusOK, "index.tmpl", data)
}

func (h *Handler) CreateUser(c *gin.Context) {
	var form view.Form
	_ = c.ShouldBind(&form)
	query := c.PostForm("q")

	payload, ok := form.Payload()
	if !ok {
		c.Redirect(http.StatusSeeOther, pageURL(query, "", ""))
		return
	}

	_, err := h.cache.CreateUser(c.Request.Context(), payload)
	h.finish(c, view.ActionCreate, err, pageURL(query, "", ""))
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id := c.Param("id")
	var form view.Form
	_ = c.ShouldBind(&form)
	query := c.PostForm("q")

	payload, ok := form.Payload()
	if !ok {
		c.Redirect(http.StatusSeeOther, pageURL(query, "edit", id))
		return
	}

	_, err := h.cache.UpdateUser(c.Request.Context(), id, payload)
	next := pageURL(query, "", "")
	if err != nil {
		next = pageURL(query, "edit", id)
	}
	h.finish(c, view.ActionUpdate, err, next)
}

// DeleteUser confirms the dialog. The dialog closes whatever the outcome.
func (h *Handler) DeleteUser(c *gin.Context) {
	err := h.cache.DeleteUser(c.Request.Context(), c.Param("id"))
	h.finish(c, view.ActionDelete, err, pageURL(c.PostForm("q"), "", ""))
}

// Refresh re-fetches the list from the API.
func (h *Handler) Refresh(c *gin.Context) {
	_ = h.cache.Refresh(c.Request.Context())
	c.Redirect(http.StatusSeeOther, pageURL(c.PostForm("q"), "", ""))
}

func (h *Handler) finish(c *gin.Context, action view.Action, err error, next string) {
	if err != nil {
		h.logger.Warn("User action failed", zap.String("action", string(action)), zap.Error(err))
	}
	h.pushToast(c, view.ToastFor(action, err))
	c.Redirect(http.StatusSeeOther, next)
}

func (h *Handler) pushToast(c *gin.Context, t view.Toast) {
	raw, err := json.Marshal(t)
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(toastCookie, base64.RawURLEncoding.EncodeToString(raw), 60, "/", "", false, true)
}

// popToast reads the pending notification and clears it so it shows only once.
func (h *Handler) popToast(c *gin.Context) *view.Toast {
	value, err := c.Cookie(toastCookie)
	if err != nil || value == "" {
		return nil
	}
	c.SetCookie(toastCookie, "", -1, "/", "", false, true)

	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil
	}
	var t view.Toast
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil
	}
	return &t
}
