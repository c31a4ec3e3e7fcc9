package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/coachup/coaching-api/internal/metrics"
	"github.com/coachup/coaching-api/internal/queue"
	"github.com/coachup/coaching-api/internal/repository"
	queue_publisher "github.com/coachup/coaching-api/internal/service"
)

// CreditPackageHandler exposes the credit-package catalogue and purchases.
type CreditPackageHandler struct {
	Credits *repository.CreditRepo
}

func NewCreditPackageHandler(cr *repository.CreditRepo) *CreditPackageHandler {
	return &CreditPackageHandler{Credits: cr}
}

// List returns every credit package.
func (h *CreditPackageHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	pkgs, err := h.Credits.ListPackages(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"credit_packages": pkgs})
}

type createPackageReq struct {
	Name         string `json:"name"`
	CreditAmount uint32 `json:"credit_amount"`
	Price        uint32 `json:"price"`
}

// Create adds a new package. Names are unique.
func (h *CreditPackageHandler) Create(c echo.Context) error {
	var req createPackageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.CreditAmount == 0 || req.Price == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/credit_amount/price required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	pkg, err := h.Credits.CreatePackage(ctx, req.Name, req.CreditAmount, req.Price)
	if err != nil {
		if err == repository.ErrNameExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "package name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, pkg)
}

// Delete removes a package by id. Past purchases keep their copied
// credit amounts, so history is unaffected.
func (h *CreditPackageHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "creditPackageId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid credit package id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Credits.DeletePackage(ctx, id); err != nil {
		if err == repository.ErrPackageNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "credit package not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "credit package deleted"})
}

// Purchase books a package for the caller, copying its current amount and
// price onto the purchase row.
func (h *CreditPackageHandler) Purchase(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "creditPackageId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid credit package id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Credits.Purchase(ctx, uid, id)
	if err != nil {
		if err == repository.ErrPackageNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "credit package not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "purchase failed"})
	}

	metrics.CreditPurchases.Inc()
	go func(ev queue.CreditPurchasedEvent) {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer pubCancel()
		_ = queue_publisher.PublishCreditPurchased(pubCtx, ev)
	}(queue.CreditPurchasedEvent{
		PurchaseID:  p.ID,
		UserID:      p.UserID,
		PackageID:   p.CreditPackageID,
		Credits:     p.PurchasedCredits,
		PricePaid:   p.PricePaid,
		PurchasedAt: p.PurchasedAt.UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, p)
}
