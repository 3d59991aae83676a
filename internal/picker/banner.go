package picker

// banner is shown above the candidate list unless hidden.
const banner = ` _____  __  __  _   _ __  __    ____   _____  ____   ____   ___   ___   _   _  ___  _____ _____  ____
|_   _||  \/  || | | |\ \/ /   / ___| | ____|/ ___| / ___| |_ _| / _ \ | \ | ||_ _||__  /| ____||  _ \
  | |  | |\/| || | | | \  /    \___ \ |  _|  \___ \ \___ \  | | | | | ||  \| | | |   / / |  _|  | |_) |
  | |  | |  | || |_| | /  \     ___) || |___  ___) | ___) | | | | |_| || |\  | | |  / /_ | |___ |  _ <
  |_|  |_|  |_| \___/ /_/\_\   |____/ |_____||____/ |____/ |___| \___/ |_| \_||___|/____||_____||_| \_\`
