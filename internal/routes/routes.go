package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/lumeo/admin-backend/internal/domain"
	"github.com/lumeo/admin-backend/internal/handler"
)

// Setup registers the admin API routes. Authentication is an external
// collaborator; the reverse proxy in front of this service injects the
// operator identity via the X-Actor-ID header.
func Setup(
	router *gin.Engine,
	products *handler.ProductHandler,
	articles *handler.ArticleHandler,
	workflow *handler.WorkflowHandler,
	versions *handler.VersionHandler,
) {
	admin := router.Group("/api/admin")

	productGroup := admin.Group("/products")
	productGroup.POST("", products.Create)
	productGroup.GET("", products.List)
	productGroup.GET("/:id", products.Get)
	productGroup.PUT("/:id", products.Update)
	productGroup.GET("/:id/publish-blockers", products.PublishBlockers)
	registerLifecycle(productGroup, domain.KindProduct, workflow, versions)

	articleGroup := admin.Group("/articles")
	articleGroup.POST("", articles.Create)
	articleGroup.GET("", articles.List)
	articleGroup.GET("/:id", articles.Get)
	articleGroup.PUT("/:id", articles.Update)
	articleGroup.GET("/:id/publish-blockers", articles.PublishBlockers)
	registerLifecycle(articleGroup, domain.KindArticle, workflow, versions)
}

func registerLifecycle(group *gin.RouterGroup, kind domain.ContentKind, workflow *handler.WorkflowHandler, versions *handler.VersionHandler) {
	wf := group.Group("/:id/workflow")
	wf.POST("/submit-review", workflow.SubmitForReview(kind))
	wf.POST("/approve", workflow.Approve(kind))
	wf.POST("/publish", workflow.Publish(kind))
	wf.POST("/unpublish", workflow.Unpublish(kind))
	wf.POST("/archive", workflow.Archive(kind))
	wf.POST("/unarchive", workflow.Unarchive(kind))
	wf.POST("/reject-review", workflow.RejectReview(kind))
	wf.GET("/transitions", workflow.Transitions(kind))

	group.GET("/:id/versions", versions.History(kind))
	group.POST("/:id/versions", versions.Snapshot(kind))
	group.POST("/:id/versions/:versionNumber/rollback", versions.Rollback(kind))
}
