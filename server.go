package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mapleledger/cashbook_backend/config"
	"github.com/mapleledger/cashbook_backend/middlewares"
	"github.com/mapleledger/cashbook_backend/models"
	"github.com/mapleledger/cashbook_backend/utils"
	"github.com/shopspring/decimal"
)

const defaultPort = "8080"

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func abortWithError(c *gin.Context, err error) {
	if errors.Is(err, utils.ErrorRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func abortWithBindError(c *gin.Context, err error) {
	if fields := utils.ProcessValidationErrors(err); fields != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fields})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func intQuery(c *gin.Context, key string) *int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

func intQueryDefault(c *gin.Context, key string, def int) int {
	if v := intQuery(c, key); v != nil {
		return *v
	}
	return def
}

func dateQuery(c *gin.Context, key string) *time.Time {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &t
}

func entryFilterFromQuery(c *gin.Context) *models.CashbookEntryFilter {
	filter := &models.CashbookEntryFilter{
		AccountId:  intQuery(c, "account_id"),
		CategoryId: intQuery(c, "category_id"),
		StartDate:  dateQuery(c, "start_date"),
		EndDate:    dateQuery(c, "end_date"),
	}
	if raw := strings.TrimSpace(c.Query("entry_type")); raw != "" {
		entryType := models.EntryType(raw)
		filter.EntryType = &entryType
	}
	if raw := strings.TrimSpace(c.Query("search")); raw != "" {
		filter.Search = &raw
	}
	return filter
}

/* import */

func previewImportHandler(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	defaultTaxRate := decimal.NewFromFloat(models.DefaultImportTaxRatePercent)
	if raw := strings.TrimSpace(c.PostForm("default_tax_rate")); raw != "" {
		rate, err := utils.ParseDecimal(raw)
		if err != nil || rate.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid default tax rate"})
			return
		}
		defaultTaxRate = rate
	}

	src, err := file.Open()
	if err != nil {
		abortWithError(c, err)
		return
	}
	defer src.Close()

	preview, err := models.PreviewCashbookImport(c.Request.Context(), src, defaultTaxRate)
	if err != nil {
		config.LogError(config.GetLogger(), "server.go", "previewImportHandler", "PreviewCashbookImport", file.Filename, err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, preview)
}

func confirmImportHandler(c *gin.Context) {
	var input models.ConfirmImportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithBindError(c, err)
		return
	}
	entries, err := models.ConfirmCashbookImport(c.Request.Context(), &input)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"entries": entries, "created_count": len(entries)})
}

/* cashbook entries */

func listEntriesHandler(c *gin.Context) {
	page, err := models.ListCashbookEntries(
		c.Request.Context(),
		entryFilterFromQuery(c),
		intQueryDefault(c, "offset", 0),
		intQueryDefault(c, "limit", 50),
	)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func createEntryHandler(c *gin.Context) {
	var input models.NewCashbookEntry
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithBindError(c, err)
		return
	}
	entry, err := models.CreateCashbookEntry(c.Request.Context(), &input)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func getEntryHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	entry, err := models.GetCashbookEntry(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func updateEntryHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var input models.NewCashbookEntry
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithBindError(c, err)
		return
	}
	entry, err := models.UpdateCashbookEntry(c.Request.Context(), id, &input)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func deleteEntryHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	entry, err := models.DeleteCashbookEntry(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func exportEntriesHandler(c *gin.Context) {
	filter := entryFilterFromQuery(c)
	format := strings.ToLower(strings.TrimSpace(c.DefaultQuery("format", "xlsx")))
	filename := "cashbook_" + time.Now().Format("20060102")

	switch format {
	case "xlsx":
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", filename))
		if err := models.ExportCashbookXlsx(c.Request.Context(), filter, c.Writer); err != nil {
			config.LogError(config.GetLogger(), "server.go", "exportEntriesHandler", "ExportCashbookXlsx", nil, err)
			c.Status(http.StatusInternalServerError)
		}
	case "csv":
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", filename))
		if err := models.ExportCashbookCsv(c.Request.Context(), filter, c.Writer); err != nil {
			config.LogError(config.GetLogger(), "server.go", "exportEntriesHandler", "ExportCashbookCsv", nil, err)
			c.Status(http.StatusInternalServerError)
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid format"})
	}
}

/* accounts */

func listAccountsHandler(c *gin.Context) {
	accounts, err := models.ListPaymentAccounts(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": accounts})
}

func createAccountHandler(c *gin.Context) {
	var input models.NewPaymentAccount
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithBindError(c, err)
		return
	}
	account, err := models.CreatePaymentAccount(c.Request.Context(), &input)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, account)
}

func getAccountHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	account, err := models.GetPaymentAccount(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func toggleAccountActiveHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var input struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithBindError(c, err)
		return
	}
	account, err := models.TogglePaymentAccountActive(c.Request.Context(), id, *input.IsActive)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func updateAccountHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var input models.NewPaymentAccount
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithBindError(c, err)
		return
	}
	account, err := models.UpdatePaymentAccount(c.Request.Context(), id, &input)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func deleteAccountHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	account, err := models.DeletePaymentAccount(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

/* categories */

func listCategoriesHandler(c *gin.Context) {
	categories, err := models.ListTransactionCategories(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func createCategoryHandler(c *gin.Context) {
	var input models.NewTransactionCategory
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithBindError(c, err)
		return
	}
	category, err := models.CreateTransactionCategory(c.Request.Context(), &input)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func updateCategoryHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var input models.NewTransactionCategory
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithBindError(c, err)
		return
	}
	category, err := models.UpdateTransactionCategory(c.Request.Context(), id, &input)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func deleteCategoryHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	category, err := models.DeleteTransactionCategory(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

/* accounting periods */

type periodInput struct {
	Year  int  `json:"year" binding:"required"`
	Month int  `json:"month" binding:"required"`
	Close bool `json:"close"`
}

func listPeriodsHandler(c *gin.Context) {
	periods, err := models.ListAccountingPeriods(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"periods": periods})
}

func setPeriodHandler(c *gin.Context) {
	var input periodInput
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithBindError(c, err)
		return
	}
	var period *models.AccountingPeriod
	var err error
	if input.Close {
		period, err = models.CloseAccountingPeriod(c.Request.Context(), input.Year, input.Month)
	} else {
		period, err = models.ReopenAccountingPeriod(c.Request.Context(), input.Year, input.Month)
	}
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, period)
}

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = defaultPort
	}

	logger := config.GetLogger()

	// SIGTERM on revision shutdown; handle it for graceful drain.
	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	// Start the HTTP server before the DB is ready; app endpoints return 503
	// until dependencies are up.
	r := gin.New()
	r.Use(gin.Recovery())

	// Correlation IDs: generate once per request and attach to context.
	r.Use(func(c *gin.Context) {
		cid := c.GetHeader("x-correlation-id")
		if cid == "" {
			cid = uuid.NewString()
		}
		c.Request = c.Request.WithContext(utils.SetCorrelationIdInContext(c.Request.Context(), cid))
		c.Header("x-correlation-id", cid)
		c.Next()
	})
	r.Use(func(c *gin.Context) {
		if c.Request.URL.Path == "/healthz" {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		if config.GetDB() == nil {
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}
		c.Next()
	})

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	corsConfig := cors.DefaultConfig()
	// In production, require an explicit allowlist via CORS_ALLOWED_ORIGINS
	// (comma-separated); in non-production allow all.
	allowedOrigins := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if strings.EqualFold(strings.TrimSpace(os.Getenv("GO_ENV")), "production") {
		if allowedOrigins == "" {
			corsConfig.AllowOrigins = []string{}
		} else {
			corsConfig.AllowOrigins = splitAndTrim(allowedOrigins)
		}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "POST", "PUT", "DELETE", "OPTIONS")
	corsConfig.AddAllowHeaders("token", "Origin", "Content-Type", "Authorization", "x-user-id", "x-user-name", "x-correlation-id")
	corsConfig.AddExposeHeaders("Content-Length", "Content-Disposition")
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	api := r.Group("/", middlewares.SessionMiddleware())

	api.POST("/cashbook/import/preview", previewImportHandler)
	api.POST("/cashbook/import/confirm", confirmImportHandler)

	api.GET("/cashbook/entries", listEntriesHandler)
	api.POST("/cashbook/entries", createEntryHandler)
	api.GET("/cashbook/entries/:id", getEntryHandler)
	api.PUT("/cashbook/entries/:id", updateEntryHandler)
	api.DELETE("/cashbook/entries/:id", deleteEntryHandler)
	api.GET("/cashbook/export", exportEntriesHandler)

	api.GET("/accounts", listAccountsHandler)
	api.POST("/accounts", createAccountHandler)
	api.GET("/accounts/:id", getAccountHandler)
	api.PUT("/accounts/:id", updateAccountHandler)
	api.PUT("/accounts/:id/active", toggleAccountActiveHandler)
	api.DELETE("/accounts/:id", deleteAccountHandler)

	api.GET("/categories", listCategoriesHandler)
	api.POST("/categories", createCategoryHandler)
	api.PUT("/categories/:id", updateCategoryHandler)
	api.DELETE("/categories/:id", deleteCategoryHandler)

	api.GET("/periods", listPeriodsHandler)
	api.POST("/periods", setPeriodHandler)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			config.LogError(logger, "server.go", "main", "ListenAndServe", nil, err)
			os.Exit(1)
		}
	}()

	// Connect dependencies after the listener is up.
	config.ConnectDatabaseWithRetry()
	config.ConnectRedis()

	if err := models.Migrate(); err != nil {
		config.LogError(logger, "server.go", "main", "Migrate", nil, err)
	}
	if err := models.SeedTransactionCategories(context.Background()); err != nil {
		config.LogError(logger, "server.go", "main", "SeedTransactionCategories", nil, err)
	}

	<-sigCtx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		config.LogError(logger, "server.go", "main", "Shutdown", nil, err)
	}
}
