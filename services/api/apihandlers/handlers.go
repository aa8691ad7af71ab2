package apihandlers

import (
	"net/http"

	allowlistDB "github.com/P2B-ARIF/facebook-info-api-backend/pkg/db/allowlist"
	submissionDB "github.com/P2B-ARIF/facebook-info-api-backend/pkg/db/submission"
	userDB "github.com/P2B-ARIF/facebook-info-api-backend/pkg/db/user"
	"github.com/P2B-ARIF/facebook-info-api-backend/pkg/identity"
	"github.com/gin-gonic/gin"
)

func HealthCheckHandle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"response": "This is a public route accessible to everyone."})
}

type HttpEndpoints struct {
	allowlistDBConn  *allowlistDB.AllowlistDBService
	userDBConn       *userDB.UserDBService
	submissionDBConn *submissionDB.SubmissionDBService
	tokenSignKey     string
	twoFAClient      identity.TwoFAClient
	inboxClient      identity.InboxClient
}

func NewHTTPHandler(
	tokenSignKey string,
	allowlistDBConn *allowlistDB.AllowlistDBService,
	userDBConn *userDB.UserDBService,
	submissionDBConn *submissionDB.SubmissionDBService,
	twoFAClient identity.TwoFAClient,
	inboxClient identity.InboxClient,
) *HttpEndpoints {
	return &HttpEndpoints{
		tokenSignKey:     tokenSignKey,
		allowlistDBConn:  allowlistDBConn,
		userDBConn:       userDBConn,
		submissionDBConn: submissionDBConn,
		twoFAClient:      twoFAClient,
		inboxClient:      inboxClient,
	}
}
