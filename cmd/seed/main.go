package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"barbershop/internal/database"
	"barbershop/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "barbearia.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&domain.Client{},
		&domain.Staff{},
		&domain.Service{},
		&domain.Appointment{},
		&domain.User{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM appointments")
	db.Exec("DELETE FROM services")
	db.Exec("DELETE FROM staff")
	db.Exec("DELETE FROM clients")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")
	ownerHash, _ := bcrypt.GenerateFromPassword([]byte("owner123"), bcrypt.DefaultCost)
	owner := domain.User{
		Username:     "owner",
		PasswordHash: string(ownerHash),
		Role:         domain.RoleOwner,
	}
	db.Create(&owner)
	log.Println("Owner created: owner / owner123")

	receptionHash, _ := bcrypt.GenerateFromPassword([]byte("reception123"), bcrypt.DefaultCost)
	db.Create(&domain.User{
		Username:     "reception",
		PasswordHash: string(receptionHash),
		Role:         domain.RoleReception,
	})
	log.Println("Reception created: reception / reception123")

	log.Println("Creating staff...")
	staff := []domain.Staff{
		{Name: "Carlos Silva", Specialty: "Barbeiro"},
		{Name: "João Pereira", Specialty: "Barbeiro"},
		{Name: "Marcos Lima", Specialty: "Colorista"},
	}
	for i := range staff {
		db.Create(&staff[i])
	}

	log.Println("Creating services...")
	d30, d60 := 30, 60
	services := []domain.Service{
		{Name: "Corte Masculino", Price: 40.00, DurationMinutes: &d30},
		{Name: "Barba", Price: 25.00, DurationMinutes: &d30},
		{Name: "Corte + Barba", Price: 60.00, DurationMinutes: &d60},
		{Name: "Sobrancelha", Price: 15.00, DurationMinutes: &d30},
	}
	for i := range services {
		db.Create(&services[i])
	}

	log.Println("Creating clients...")
	clients := []domain.Client{}
	names := []string{"Pedro Santos", "Lucas Oliveira", "Rafael Costa", "Gustavo Almeida", "Bruno Ferreira"}
	for i, name := range names {
		c := domain.Client{
			Name:  name,
			Phone: fmt.Sprintf("+55 11 9876-54%02d", i+10),
			Email: fmt.Sprintf("cliente%d@mail.com", i+1),
		}
		db.Create(&c)
		clients = append(clients, c)
	}

	log.Println("Creating appointments...")
	slots := []string{"08:00", "09:30", "11:00", "14:00", "15:30", "17:00"}
	created := 0
	for day := 0; day < 14; day++ {
		date := time.Now().AddDate(0, 0, day-7).Format(domain.DateLayout)
		for _, member := range staff {
			for _, slot := range slots {
				if rand.Intn(3) != 0 {
					continue
				}
				a := domain.Appointment{
					ClientID:  clients[rand.Intn(len(clients))].ID,
					StaffID:   member.ID,
					ServiceID: services[rand.Intn(len(services))].ID,
					Date:      date,
					Time:      slot,
				}
				if err := db.Create(&a).Error; err == nil {
					created++
				}
			}
		}
	}

	log.Printf("Seed complete: %d staff, %d services, %d clients, %d appointments",
		len(staff), len(services), len(clients), created)
}
