package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/brunapfe/SIGA/app/config"
	"github.com/brunapfe/SIGA/app/database"
	"github.com/brunapfe/SIGA/app/models"
)

func main() {
	name := flag.String("name", "", "professor name")
	email := flag.String("email", "", "professor email")
	password := flag.String("password", "", "professor password")
	flag.Parse()

	if *name == "" || *email == "" || *password == "" {
		fmt.Println("Usage: add_professor -name NAME -email EMAIL -password PASSWORD")
		os.Exit(1)
	}

	cfg := config.Load()
	db, err := config.OpenDB(cfg)
	if err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	professor := &models.Professor{
		Name:     *name,
		Email:    *email,
		Password: *password,
	}

	if err := database.CreateProfessor(db, professor); err != nil {
		fmt.Printf("Error creating professor: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Professor created successfully: %s (%s)\n", professor.Name, professor.Email)
}
