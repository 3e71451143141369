package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/xavierca1/ligue-crm-sync/internal/infra/integration/hubspot"
)

// Smoke test manual da integração HubSpot:
// go run sample/test-hubspot-integration/main.go <contactRemoteID>
func main() {
	godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Println("uso: main <contactRemoteID>")
		os.Exit(1)
	}
	remoteID := os.Args[1]

	client := hubspot.NewClient(os.Getenv("HUBSPOT_TOKEN"), "https://api.hubapi.com")
	ctx := context.Background()

	if !client.CheckStatus(ctx) {
		fmt.Println("❌ API HubSpot não respondeu")
		os.Exit(1)
	}
	fmt.Println("✅ API HubSpot OK")

	contact, err := client.GetContact(ctx, remoteID)
	if err != nil {
		fmt.Printf("❌ Erro ao buscar contato: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ Contato: %s %s <%s>\n",
		contact.Properties.FirstName, contact.Properties.LastName, contact.Properties.Email)

	companies, err := client.GetAssociations(ctx, hubspot.ObjectTypeContacts, hubspot.ObjectTypeCompanies, remoteID)
	if err != nil {
		fmt.Printf("⚠️ Erro ao listar empresas: %v\n", err)
	} else {
		fmt.Printf("✅ Empresas associadas: %v\n", companies)
	}

	deals, err := client.GetAssociations(ctx, hubspot.ObjectTypeContacts, hubspot.ObjectTypeDeals, remoteID)
	if err != nil {
		fmt.Printf("⚠️ Erro ao listar negócios: %v\n", err)
	} else {
		fmt.Printf("✅ Negócios associados: %v\n", deals)
	}
}
