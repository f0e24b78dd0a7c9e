package integration_test

const (
	// User related constants
	TestUserId       = 1
	TestUserName     = "John Doe"
	TestUserEmail    = "test@example.com"
	TestUserPassword = "Test123!@#"

	// Movie related constants, matching testdata/movies_up.sql
	TestMovieId        = 1
	TestMovieTitle     = "Inception"
	TestMoviePosterUrl = "https://example.com/inception.jpg"

	// Showing related constants, matching testdata/showings_up.sql
	TestShowingId         = 1
	TestEmptyShowingId    = 2
	TestShowingTheater    = "Hall 1"
	TestShowingStartTime  = "2030-05-01T19:30:00Z"
	TestLayoutRows        = 2
	TestLayoutSeatsPerRow = 3

	// Catalog related constants, served by the fake OMDb server
	TestCatalogTitle = "Interstellar"
)
