// Command create_user seeds a back-office account, e.g. the first admin:
//
//	go run ./cmd/utils -username admin -password secret -role admin
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"cezatakip-service/internal/domain/entity"
	"cezatakip-service/internal/infrastructure/config"
	"cezatakip-service/internal/infrastructure/persistence"
	mongoRepo "cezatakip-service/internal/interface/repository"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	username := flag.String("username", "", "login name")
	password := flag.String("password", "", "initial password")
	fullName := flag.String("name", "", "display name")
	role := flag.String("role", entity.RoleUye, "admin, ceza or uye")
	flag.Parse()

	if *username == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}
	switch *role {
	case entity.RoleAdmin, entity.RoleCeza, entity.RoleUye:
	default:
		log.Fatalf("unknown role %q", *role)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer client.Disconnect(ctx)

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	users := mongoRepo.NewMongoUserRepository(db)
	user := &entity.User{
		Username:     *username,
		PasswordHash: string(hash),
		FullName:     *fullName,
		Role:         *role,
		IsActive:     true,
	}
	if err := users.Save(ctx, user); err != nil {
		log.Fatalf("save user: %v", err)
	}

	fmt.Printf("user %s (%s) saved\n", user.Username, user.Role)
}
