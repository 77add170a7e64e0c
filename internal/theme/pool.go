package theme

import "github.com/lamim/replicaforge/pkg/models"

// DefaultThemes is the built-in theme pool. Each label names a business
// context the generated variant is re-skinned into.
var DefaultThemes = []string{
	"Coffee Shop Manager", "Pizza Restaurant", "Bakery Counter", "Grocery Store",
	"Bookstore Inventory", "Game Store", "Electronics Shop", "Fashion Boutique",
	"Pet Store Manager", "Flower Shop", "Music Store", "Art Gallery",
	"Sports Equipment", "Candy Store", "Toy Shop", "Pharmacy Counter",
	"Hardware Store", "Car Rental", "Hotel Booking", "Travel Agency",
	"Fitness Gym", "Restaurant Menu", "Library System", "Movie Theater",
	"School Supplies", "Photography Studio", "Beauty Salon", "Laundromat",
	"Ice Cream Parlor", "Juice Bar", "Bike Rental", "Camping Gear",
	"Wedding Planner", "Food Truck", "Antique Shop", "Craft Store",
	"Supermarket Chain", "Farmers Market", "Butcher Shop", "Seafood Market",
	"Book Cafe", "Tattoo Studio", "Barbershop", "Nail Salon",
	"Daycare Center", "E-learning Platform", "Music Academy", "Dance Studio",
	"Driving School", "Language School", "Martial Arts Dojo", "Cooking Class",
	"Event Venue", "Conference Center", "Coworking Space", "Startup Incubator",
	"Real Estate Agency", "Property Rental", "Interior Design Studio", "Furniture Store",
	"Garden Center", "Plant Nursery", "Organic Store", "Wine Shop",
	"Brewery Taproom", "Sports Bar", "Concert Hall", "Theater Playhouse",
	"Amusement Park", "Zoo Management", "Aquarium Center", "Arcade Center",
	"Escape Room", "Bowling Alley", "Golf Course", "Tennis Club",
	"Hospital Management", "Clinic Reception", "Dental Office", "Veterinary Clinic",
	"Courier Service", "Logistics Hub", "Airline Booking", "Shipping Company",
	"Taxi Service", "Parking Garage", "Fuel Station", "Tech Repair Shop",
	"Mobile Store", "Laptop Store", "Watch Boutique", "Jewelry Store",
	"Surf Shop", "Diving Center", "Ski Resort", "Snowboard Shop",
	"Board Game Cafe", "VR Arcade", "Esports Arena", "Streaming Studio",
	"Podcast Studio", "Radio Station", "Film Production", "Animation Studio",
	"Bank Branch", "Stock Brokerage", "Investment Firm", "Insurance Agency",
	"Charity Organization", "Volunteer Center", "Community Center", "Resort Manager",
	"Hostel Manager", "Bed and Breakfast", "Vacation Rentals", "RV Rental",
	"Cruise Line", "Train Service", "Metro Station", "Bus Depot",
	"Dairy Farm", "Poultry Farm", "Greenhouse Farming", "Seed Store",
	"Construction Firm", "Architecture Studio", "Clothing Store", "Tailor Shop",
	"Burger Joint", "Sandwich Shop", "Steakhouse", "Seafood Restaurant",
	"Vegan Cafe", "Salad Bar", "Catering Service", "Ramen Shop",
	"Sushi Bar", "French Bistro", "Greek Taverna", "Cupcake Store",
	"Donut Shop", "Chocolate Boutique", "Pancake House", "Waffle Bar",
	"Coffee Roastery", "Bubble Tea Shop", "Gaming Cafe", "Internet Cafe",
	"Makerspace", "Electronics Repair", "Drone Store", "Smart Home Store",
	"Yoga Studio", "Meditation Center", "Spa Resort", "News Agency",
	"Book Publisher", "Printing Press", "Stationery Shop", "Souvenir Shop",
	"Party Supplies", "Costume Rental", "Photo Booth", "Karaoke Bar",
	"Software Company", "Web Design Agency", "Game Development Studio", "Cloud Hosting",
	"Robotics Startup", "IoT Platform", "Wildlife Sanctuary", "National Park",
	"Botanical Garden", "Science Center", "Planetarium", "Space Observatory",
	"Animal Shelter", "Dog Grooming", "Cat Cafe", "Retirement Community",
	"Boarding School", "University Campus", "Exam Prep Center", "Research Institute",
	"IT Training Center", "Coding Bootcamp", "Virtual Classroom", "Job Portal",
	"Freelance Marketplace", "Moving Company", "Cleaning Services", "Pest Control",
	"Security Services", "Locksmith Services", "Baby Store", "Maternity Shop",
	"Toy Rental", "Kids Party Planner", "Pet Daycare", "Pet Hotel",
	"Bird Store", "Reptile Shop", "Organic Bakery", "Keto Cafe",
	"Smoothie Shop", "Spice Shop", "Cheese Store", "Craft Brewery",
	"Pilates Studio", "CrossFit Gym", "Boxing Club", "Climbing Gym",
	"Skateboard Shop", "Roller Rink", "Adventure Park", "Model Train Store",
	"3D Printing Service", "Prototype Studio", "Digital Art Gallery", "Luxury Car Dealer",
	"Used Car Dealer", "Motorcycle Shop", "Scooter Rental", "EV Charging Station",
	"Tire Shop", "Car Wash", "Detailing Center", "Thrift Shop",
	"Second-Hand Store", "Auction House", "Stamp Shop", "Coin Shop",
	"Antique Bookstore", "Rare Vinyl Store", "Vintage Clothing Shop", "Retro Arcade",
}

// DefaultPalettes is the built-in color palette pool. No palette uses pure
// white, black or gray as a dominant color.
var DefaultPalettes = []models.Palette{
	{Label: "Coral & Teal", Primary: "#FF6B6B", Secondary: "#4ECDC4", Accent: "#45B7D1", Background: "#F8F9FA", Text: "#2C3E50"},
	{Label: "Purple & Pink", Primary: "#6C5CE7", Secondary: "#FD79A8", Accent: "#FDCB6E", Background: "#DDD6FE", Text: "#2D3748"},
	{Label: "Green & Red", Primary: "#00B894", Secondary: "#FF7675", Accent: "#74B9FF", Background: "#F0FDF4", Text: "#1A202C"},
	{Label: "Orange & Cyan", Primary: "#E17055", Secondary: "#81ECEC", Accent: "#A29BFE", Background: "#FFF5F5", Text: "#2C5282"},
	{Label: "Turquoise & Yellow", Primary: "#00CEC9", Secondary: "#FDCB6E", Accent: "#E84393", Background: "#F0FDFA", Text: "#1A365D"},
	{Label: "Purple & Green", Primary: "#6C5CE7", Secondary: "#00B894", Accent: "#FF7675", Background: "#EDF2F7", Text: "#2D3748"},
	{Label: "Pink & Blue", Primary: "#FD79A8", Secondary: "#74B9FF", Accent: "#FDCB6E", Background: "#FFF0F6", Text: "#1A202C"},
	{Label: "Mint & Orange", Primary: "#00B894", Secondary: "#E17055", Accent: "#A29BFE", Background: "#F7FAFC", Text: "#2C5282"},
	{Label: "Red & Aqua", Primary: "#FF7675", Secondary: "#81ECEC", Accent: "#FDCB6E", Background: "#FFFAF0", Text: "#1A365D"},
	{Label: "Lavender & Sky Blue", Primary: "#A29BFE", Secondary: "#55A3FF", Accent: "#FD79A8", Background: "#F8FAFC", Text: "#2D3748"},
	{Label: "Orange & Periwinkle", Primary: "#FF9F43", Secondary: "#70A1FF", Accent: "#5F27CD", Background: "#FFF8E1", Text: "#1A202C"},
	{Label: "Seafoam & Coral", Primary: "#1DD1A1", Secondary: "#FF6B6B", Accent: "#3742FA", Background: "#F0FFF4", Text: "#2C5282"},
	{Label: "Bright Red & Emerald", Primary: "#FF3838", Secondary: "#2ECC71", Accent: "#F39C12", Background: "#FEF5E7", Text: "#1A365D"},
	{Label: "Violet & Turquoise", Primary: "#8E44AD", Secondary: "#1ABC9C", Accent: "#E67E22", Background: "#F4F1FF", Text: "#2D3748"},
	{Label: "Crimson & Dodger Blue", Primary: "#E74C3C", Secondary: "#3498DB", Accent: "#F1C40F", Background: "#FDF2F8", Text: "#1A202C"},
	{Label: "Amethyst & Teal", Primary: "#9B59B6", Secondary: "#16A085", Accent: "#D35400", Background: "#FAF5FF", Text: "#2C5282"},
	{Label: "Forest Green & Pink", Primary: "#27AE60", Secondary: "#E91E63", Accent: "#FF9800", Background: "#F7FDF0", Text: "#1A365D"},
	{Label: "Indigo & Green", Primary: "#3F51B5", Secondary: "#4CAF50", Accent: "#FF5722", Background: "#F3F4FF", Text: "#2D3748"},
	{Label: "Deep Purple & Teal", Primary: "#673AB7", Secondary: "#009688", Accent: "#FFC107", Background: "#F8F5FF", Text: "#1A202C"},
	{Label: "Brown & Blue", Primary: "#795548", Secondary: "#2196F3", Accent: "#FF4081", Background: "#F5F5DC", Text: "#2C5282"},
	{Label: "Crimson & Light Sea Green", Primary: "#DC143C", Secondary: "#20B2AA", Accent: "#FFD700", Background: "#FFF8DC", Text: "#191970"},
	{Label: "Deep Pink & Dark Turquoise", Primary: "#FF1493", Secondary: "#00CED1", Accent: "#32CD32", Background: "#F0F8FF", Text: "#4B0082"},
	{Label: "Dark Magenta & Dark Orange", Primary: "#8B008B", Secondary: "#FF8C00", Accent: "#00FA9A", Background: "#F5FFFA", Text: "#2F4F4F"},
	{Label: "Royal Blue & Tomato", Primary: "#4169E1", Secondary: "#FF6347", Accent: "#9370DB", Background: "#F0F0F0", Text: "#8B4513"},
}
