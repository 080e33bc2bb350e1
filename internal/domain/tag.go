package domain

// NoTag is the tag id a form submits when no tag was selected.
// Adding it to a recipe is a no-op.
const NoTag int64 = 0

// Tag is a cuisine label that can be applied to any number of recipes.
// Tags are global and seeded by migration; the application never creates or
// deletes them.
type Tag struct {
	ID      int64  `json:"id"`
	Cuisine string `json:"cuisine"`
}

// RecipeTag is one link between a recipe and a tag.
// At most one RecipeTag exists per (RecipeID, TagID) pair.
// Tag is attached by reads that join the tags table.
type RecipeTag struct {
	ID       int64 `json:"id"`
	RecipeID int64 `json:"recipe_id"`
	TagID    int64 `json:"tag_id"`
	Tag      Tag   `json:"tag"`
}
