package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/team33/casino-gateway/internal/promo"
)

func ListPromotions(svc *promo.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		promotions, err := svc.List(c.Request.Context(), c.Query("category"))
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": promotions})
	}
}

func GetPromotion(svc *promo.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		promotion, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": promotion})
	}
}

func ClaimPromotion(svc *promo.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Claim(c.Request.Context(), c.Param("id")); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Promotion claimed"})
	}
}
