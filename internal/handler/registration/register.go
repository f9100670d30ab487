// File: internal/handler/registration/register.go
package registration

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"annuary/internal/api"
	"annuary/internal/database"
	"annuary/internal/model"
	"annuary/internal/service"
	"annuary/internal/store"
	"annuary/internal/worker"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

const (
	// DefaultImage 是未上傳或儲存失敗時使用的檔名
	DefaultImage = "default.png"

	msgPageNotFound   = "this page does not exist"
	msgAlreadyAccount = "it seems you already have an account"
)

var (
	hashPassword            = service.HashPassword
	verifyAccessToken       = service.VerifyAccessToken
	issueVerificationToken  = service.IssueVerificationToken
	renderConfirmationEmail = service.RenderConfirmationEmail
	getUserByEmail          = store.GetUserByEmail
	getLocalityByID         = store.GetLocalityByID
	createUser              = store.CreateUser
	createCustomer          = store.CreateCustomer
	createProvider          = store.CreateProvider
	setProviderCategories   = store.SetProviderCategories
)

// alreadyAuthenticated 檢查請求是否帶著有效的存取令牌
// 註冊路由不經過 RequireAuth，這裡只做非強制的檢查
func alreadyAuthenticated(c echo.Context) bool {
	header := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return false
	}
	_, err := verifyAccessToken(parts[1])
	return err == nil
}

// saveImage 盡力儲存上傳檔：失敗時回傳警告訊息並退回預設檔名，不中斷註冊
func saveImage(c echo.Context, files service.FileStorage, directory string) (string, string) {
	file, err := c.FormFile("logo")
	if err != nil {
		return DefaultImage, ""
	}
	name, err := saveUpload(c.Request().Context(), files, directory, file)
	if err != nil {
		c.Logger().Errorf("saving %s failed: %v", directory, err)
		return DefaultImage, "the file could not be stored: " + err.Error()
	}
	return name, ""
}

var saveUpload = func(ctx context.Context, files service.FileStorage, directory string, file *multipart.FileHeader) (string, error) {
	return files.Save(ctx, directory, file)
}

// RegisterHandler 註冊 customer 或 provider
// @Summary     Register an account
// @Description 建立 customer 或 provider 帳號並寄出驗證信，帳號在驗證前不會出現在任何公開列表
// @Tags        registration
// @Accept      multipart/form-data
// @Produce     json
// @Param       type_of_user path     string true  "customer 或 provider"
// @Param       email        formData string true  "Email"
// @Param       password     formData string true  "密碼"
// @Param       confirm_password formData string true "確認密碼"
// @Param       locality_id  formData int    true  "地區 id"
// @Param       logo         formData file   false "logo 或頭像"
// @Success     201 {object} api.RegisterResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     409 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /register/{type_of_user} [post]
func RegisterHandler(db database.DB, files service.FileStorage, mailer service.Mailer, wp worker.Pool, baseURL string) echo.HandlerFunc {
	return func(c echo.Context) error {
		if alreadyAuthenticated(c) {
			return c.JSON(http.StatusConflict, api.ErrorResponse{Message: "you are already logged in"})
		}

		switch strings.ToLower(c.Param("type_of_user")) {
		case "customer":
			return registerCustomer(c, db, files, mailer, wp, baseURL)
		case "provider":
			return registerProvider(c, db, files, mailer, wp, baseURL)
		default:
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: msgPageNotFound})
		}
	}
}

func registerCustomer(c echo.Context, db database.DB, files service.FileStorage, mailer service.Mailer, wp worker.Pool, baseURL string) error {
	var req api.RegisterCustomerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid form data"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
	}

	user, status, err := checkAccount(c, db, req.Email, req.Password, req.ConfirmPassword, model.RoleCustomer, req.LocalityID)
	if err != nil {
		return c.JSON(status, api.ErrorResponse{Message: err.Error()})
	}

	avatar, warning := saveImage(c, files, "avatar")

	ctx := c.Request().Context()
	tx, err := db.Begin(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
	}
	defer tx.Rollback(ctx)

	if _, err := createUser(ctx, tx, user); err != nil {
		return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
	}
	customer := &model.Customer{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Newsletter: req.Newsletter,
		Avatar:     avatar,
		UserID:     user.ID,
	}
	if _, err := createCustomer(ctx, tx, customer); err != nil {
		return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
	}
	if err := tx.Commit(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
	}

	sendConfirmation(c, mailer, wp, *user, baseURL)

	return c.JSON(http.StatusCreated, api.RegisterResponse{
		UserID:  user.ID,
		Logo:    avatar,
		Warning: warning,
	})
}

func registerProvider(c echo.Context, db database.DB, files service.FileStorage, mailer service.Mailer, wp worker.Pool, baseURL string) error {
	var req api.RegisterProviderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid form data"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
	}

	user, status, err := checkAccount(c, db, req.Email, req.Password, req.ConfirmPassword, model.RoleProvider, req.LocalityID)
	if err != nil {
		return c.JSON(status, api.ErrorResponse{Message: err.Error()})
	}

	logo, warning := saveImage(c, files, "logo")

	ctx := c.Request().Context()
	tx, err := db.Begin(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
	}
	defer tx.Rollback(ctx)

	if _, err := createUser(ctx, tx, user); err != nil {
		return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
	}
	provider := &model.Provider{
		Name:        req.Name,
		Description: req.Description,
		Logo:        logo,
		UserID:      user.ID,
	}
	if _, err := createProvider(ctx, tx, provider); err != nil {
		return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
	}
	if len(req.CategoryIDs) > 0 {
		if err := setProviderCategories(ctx, tx, provider.ID, req.CategoryIDs); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
	}

	sendConfirmation(c, mailer, wp, *user, baseURL)

	return c.JSON(http.StatusCreated, api.RegisterResponse{
		UserID:  user.ID,
		Logo:    logo,
		Warning: warning,
	})
}

// checkAccount 做共通的帳號檢查並回傳待建立的 User
// 重複的 email 不透露細節，一律回同樣的訊息
func checkAccount(c echo.Context, db database.DB, email, password, confirm, role string, localityID int) (*model.User, int, error) {
	email = strings.ToLower(email)

	if _, err := getUserByEmail(c.Request().Context(), db, email); err == nil {
		return nil, http.StatusConflict, errors.New(msgAlreadyAccount)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, http.StatusInternalServerError, err
	}

	if password != confirm {
		return nil, http.StatusBadRequest, errors.New("passwords must be identical")
	}

	// 表單的地區選項必須指向存在的地區
	if _, err := getLocalityByID(c.Request().Context(), db, localityID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, http.StatusBadRequest, errors.New("this locality does not exist")
		}
		return nil, http.StatusInternalServerError, err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, http.StatusInternalServerError, errors.New("failed to hash password")
	}

	return &model.User{
		Email:        email,
		PasswordHash: hash,
		Roles:        []string{role},
		IsVerified:   false,
		LocalityID:   &localityID,
	}, 0, nil
}

// sendConfirmation 產生簽名連結並透過 worker pool 寄出驗證信
// 寄信失敗只記錄，不影響已建立的帳號
func sendConfirmation(c echo.Context, mailer service.Mailer, wp worker.Pool, user model.User, baseURL string) {
	logger := c.Logger()
	wp.Submit(func() {
		token, err := issueVerificationToken(user, service.VerificationTTL)
		if err != nil {
			logger.Errorf("issuing verification token for user %d failed: %v", user.ID, err)
			return
		}
		url := service.BuildVerificationURL(baseURL, user, token)
		body, err := renderConfirmationEmail(url, int(service.VerificationTTL.Hours()))
		if err != nil {
			logger.Errorf("rendering confirmation email for user %d failed: %v", user.ID, err)
			return
		}
		if err := mailer.Send(user.Email, "Confirmation d'inscription", body); err != nil {
			logger.Errorf("sending confirmation email for user %d failed: %v", user.ID, err)
		}
	})
}
