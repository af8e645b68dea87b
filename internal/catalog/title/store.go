// Copyright (c) 2026 Scorebook. All rights reserved.
// Author: duong.vq.dev@gmail.com

package title

import "context"

// Repository defines the data access contract for titles and their genre
// associations.
type Repository interface {

	/*
		List returns a page of titles matching the filter, genres and rating
		hydrated.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit: int
		  - offset: int

		Returns:
		  - []Title: Page of hydrated titles
		  - error: Retrieval failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]Title, error)

	/*
		Count returns the number of titles matching the filter.

		Parameters:
		  - context: context.Context
		  - filter: Filter

		Returns:
		  - int: Matching row count
		  - error: Retrieval failures
	*/
	Count(context context.Context, filter Filter) (int, error)

	/*
		FindByID returns a single hydrated title.

		Parameters:
		  - context: context.Context
		  - id: int

		Returns:
		  - *Title: Hydrated entity with category, genres, and rating
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByID(context context.Context, id int) (*Title, error)

	/*
		Exists reports whether a title row exists.

		Parameters:
		  - context: context.Context
		  - id: int

		Returns:
		  - bool: Row presence
		  - error: Retrieval failures
	*/
	Exists(context context.Context, id int) (bool, error)

	/*
		Create inserts the title and its genre join rows in one transaction.

		Parameters:
		  - context: context.Context
		  - title: *Title (ID populated on return)
		  - categoryID: *int (nil for uncategorized)
		  - genreIDs: []int

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, title *Title, categoryID *int, genreIDs []int) error

	/*
		Update rewrites the title row and, when replaceGenres is set, its genre
		join rows in one transaction.

		Parameters:
		  - context: context.Context
		  - title: *Title
		  - categoryID: *int
		  - genreIDs: []int
		  - replaceGenres: bool

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	Update(context context.Context, title *Title, categoryID *int, genreIDs []int, replaceGenres bool) error

	/*
		Delete removes a title. Reviews and genre joins cascade.

		Parameters:
		  - context: context.Context
		  - id: int

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	Delete(context context.Context, id int) error
}
