package connection

import (
	"clockedin.io/infrastructure/database/connection/datastore"
)

func ConnectToDatabase() {
	datastore.Connect()
}
