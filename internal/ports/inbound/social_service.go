package inbound

import "context"

// SocialService publishes recipes to the social automation webhook with a
// templated caption.
type SocialService interface {
	// PublishRecipe formats the caption for a published recipe and posts
	// it to the configured social webhook. Fails when the webhook is not
	// configured or returns a non-2xx status.
	PublishRecipe(ctx context.Context, recipeID string) error

	// BuildCaption returns the caption that PublishRecipe would post,
	// used by the dashboard preview.
	BuildCaption(ctx context.Context, recipeID string) (string, error)
}
