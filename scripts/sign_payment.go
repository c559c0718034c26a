//go:build ignore

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"codeberg.org/inkwell/billing/internal/gateway"
)

// prints the signature the checkout widget would return for an order and payment pair
func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: go run scripts/sign_payment.go <order_id> <payment_id>")
		fmt.Println("Example: go run scripts/sign_payment.go order_9A33XWu170gUtm pay_29QQoUBi66xm2f")
		os.Exit(1)
	}

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	secret := os.Getenv("RAZORPAY_SECRET_KEY")
	if secret == "" {
		log.Fatal("RAZORPAY_SECRET_KEY not set")
	}

	orderID, paymentID := os.Args[1], os.Args[2]

	fmt.Println(gateway.Sign(secret, orderID, paymentID))
}
