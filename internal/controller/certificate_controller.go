package controller

import (
	"examen_backend/internal/service"
	"examen_backend/internal/util"
	"examen_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type CertificateController struct {
	CertificateService *service.CertificateService
}

func NewCertificateController(certificateService *service.CertificateService) *CertificateController {
	return &CertificateController{CertificateService: certificateService}
}

// Issue godoc
// @Summary Issue the certificate for a passing result
// @Description Idempotent; repeated calls return the same certificate
// @Tags certificates
// @Produce  json
// @Param   id path int true "result id"
// @Success 200 {object} util.Response{data=model.Certificate} "already issued"
// @Success 201 {object} util.Response{data=model.Certificate} "newly minted"
// @Failure 400 {object} util.Response "result below passing score"
// @Router /api/student/results/{id}/certificate [post]
// @Security BearerAuth
func (c *CertificateController) Issue(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	cert, created, err := c.CertificateService.IssueOrFetch(util.MustParseUint(ctx.Param("id")), claims.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	if created {
		monitoring.CertificateCounter.Inc()
		util.Created(ctx, cert)
		return
	}
	util.Success(ctx, cert)
}

// Verify godoc
// @Summary Verify a certificate by its public code
// @Tags certificates
// @Produce  json
// @Param   code path string true "verification code"
// @Success 200 {object} util.Response{data=model.Certificate}
// @Failure 404 {object} util.Response
// @Router /api/certificates/{code} [get]
func (c *CertificateController) Verify(ctx *gin.Context) {
	cert, err := c.CertificateService.Lookup(ctx.Param("code"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, cert)
}
