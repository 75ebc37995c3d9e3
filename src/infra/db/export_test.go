package db

var NewMigrate = newMigrate
