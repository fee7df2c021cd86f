package main

import (
	"fmt"
	"log"
	"movie-store-server/models"
	"movie-store-server/storage"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// Seeds the catalog with a starter set of movies, actors and the two
// default accounts. Safe to re-run; existing rows are left alone.
func main() {
	storage.InitializeDB()

	seedUser("admin@movie.com", "Admin", "User", "Admin@1122", "admin")
	seedUser("user@movie.com", "User", "Name", "User@1122", "user")

	var movieCount int64
	storage.DB.Model(&models.Movie{}).Count(&movieCount)
	if movieCount == 0 {
		movies := []models.Movie{
			{
				Title:           "The Shawshank Redemption",
				Description:     "Two imprisoned men bond over a number of years, finding solace and eventual redemption through acts of common decency.",
				Genre:           "Drama",
				Director:        "Frank Darabont",
				Price:           decimal.RequireFromString("9.99"),
				Rating:          4.5,
				ReleaseDate:     mustDate("1994-10-14"),
				DurationMinutes: 142,
				ImageURL:        "https://m.media-amazon.com/images/M/MV5BMDFkYTc0MGEtZmNhMC00ZDIzLWFmNTEtODM1ZmRlYWMwMWFmXkEyXkFqcGdeQXVyMTMxODk2OTU@._V1_.jpg",
				VideoURL:        "https://www.youtube.com/watch?v=6hB3S9bIaco",
			},
			{
				Title:           "The Godfather",
				Description:     "The aging patriarch of an organized crime dynasty transfers control of his clandestine empire to his reluctant son.",
				Genre:           "Crime, Drama",
				Director:        "Francis Ford Coppola",
				Price:           decimal.RequireFromString("8.99"),
				Rating:          4.9,
				ReleaseDate:     mustDate("1972-03-24"),
				DurationMinutes: 175,
				ImageURL:        "https://m.media-amazon.com/images/M/MV5BM2MyNjYxNmUtYTAwNi00MTYxLWJmNWYtYzZlODY3ZTk3OTFlXkEyXkFqcGdeQXVyNzkwMjQ5NzM@._V1_.jpg",
				VideoURL:        "https://www.youtube.com/watch?v=sY1S34973zA",
			},
		}
		if err := storage.DB.Create(&movies).Error; err != nil {
			log.Fatalf("seeding movies: %v", err)
		}
	}

	var shawshank models.Movie
	storage.DB.Where("title = ?", "The Shawshank Redemption").First(&shawshank)

	var actorCount int64
	storage.DB.Model(&models.Actor{}).Count(&actorCount)
	if actorCount == 0 && shawshank.ID != 0 {
		actors := []models.Actor{
			{
				Name:        "Tim Robbins",
				Bio:         "American actor and filmmaker",
				DateOfBirth: mustDate("1958-10-16"),
				ImageURL:    "https://m.media-amazon.com/images/M/MV5BMTI1OTYxNzAxOF5BMl5BanBnXkFtZTYwNTE5ODI4._V1_.jpg",
			},
			{
				Name:        "Morgan Freeman",
				Bio:         "American actor, director, and narrator",
				DateOfBirth: mustDate("1937-06-01"),
				ImageURL:    "https://m.media-amazon.com/images/M/MV5BMTc0MDMyMzI2OF5BMl5BanBnXkFtZTcwMzM2OTk1MQ@@._V1_.jpg",
			},
		}
		if err := storage.DB.Create(&actors).Error; err != nil {
			log.Fatalf("seeding actors: %v", err)
		}

		cast := []models.MovieActor{
			{MovieID: shawshank.ID, ActorID: actors[0].ID, CharacterName: "Andy Dufresne"},
			{MovieID: shawshank.ID, ActorID: actors[1].ID, CharacterName: "Ellis Boyd 'Red' Redding"},
		}
		if err := storage.DB.Create(&cast).Error; err != nil {
			log.Fatalf("seeding cast: %v", err)
		}
	}

	fmt.Println("Catalog seeding completed successfully!")
}

func seedUser(email, firstName, lastName, password, role string) {
	var existing int64
	storage.DB.Model(&models.User{}).Where("email = ?", email).Count(&existing)
	if existing > 0 {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hashing password for %s: %v", email, err)
	}

	user := models.User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  string(hashed),
		Role:      role,
	}
	if err := storage.DB.Create(&user).Error; err != nil {
		log.Fatalf("seeding user %s: %v", email, err)
	}
}

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		log.Fatalf("bad date %q: %v", s, err)
	}
	return t
}
